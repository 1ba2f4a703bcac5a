package main

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcomplete/complete"
	"github.com/dhamidi/jcomplete/config"
	"github.com/dhamidi/jcomplete/java/codebase"
	"github.com/dhamidi/jcomplete/java/syntax"
	"github.com/dhamidi/jcomplete/java/syntax/treesitter"
)

func newProvider(cfg *config.Config) syntax.Provider {
	p := treesitter.New(
		treesitter.WithStrict(cfg.Parse.Strict),
		treesitter.WithLogger(commonlog.GetLogger("jcomplete.treesitter")),
	)
	return syntax.WithTimeout(p, cfg.Parse.Timeout)
}

func newPipeline(cfg *config.Config) *complete.Pipeline {
	return complete.NewPipeline(
		complete.NewThisKeyword(newProvider(cfg)),
	)
}

func codebaseOptions(cfg *config.Config) []codebase.Option {
	return []codebase.Option{
		codebase.WithPipeline(newPipeline(cfg)),
		codebase.WithSnippets(cfg.Complete.Snippets),
	}
}
