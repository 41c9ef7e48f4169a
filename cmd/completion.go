package cmd

import (
	"github.com/etnz/teller/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the tlr command line for shell completion.
func Completion() *complete.Command {
	account := map[string]complete.Predictor{"n": predict.Something}
	amount := map[string]complete.Predictor{"n": predict.Something, "a": predict.Something}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":        predict.Files("*.env"),
			"snapshot":      predict.Files("*"),
			"store":         predict.Set{"file", "sqlite"},
			"u":             predict.Something,
			"p":             predict.Something,
			"reset-corrupt": predict.Nothing,
			"v":             predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"login": {},
			"register": {Flags: map[string]complete.Predictor{
				"login":    predict.Something,
				"password": predict.Something,
				"confirm":  predict.Something,
				"name":     predict.Something,
			}},
			"passwd": {Flags: map[string]complete.Predictor{
				"new":     predict.Something,
				"confirm": predict.Something,
			}},
			"open":     {Flags: map[string]complete.Predictor{"owner": predict.Something}},
			"accounts": {},
			"statement": {Flags: map[string]complete.Predictor{
				"n":      predict.Something,
				"format": predict.Set{"text", "markdown", "html"},
			}},
			"rename":   {Flags: map[string]complete.Predictor{"n": predict.Something, "owner": predict.Something}},
			"close":    {Flags: account},
			"deposit":  {Flags: amount},
			"withdraw": {Flags: amount},
			"transfer": {Flags: map[string]complete.Predictor{
				"from": predict.Something,
				"to":   predict.Something,
				"a":    predict.Something,
			}},
			"query":    {Args: predict.Something},
			"topic":    {Args: predict.Set(append(topics, docs.All))},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
