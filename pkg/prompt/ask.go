package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-scaffold/pkg/manifest"
	"github.com/goliatone/go-scaffold/pkg/template"
)

// Ask prompts for each variable in declaration order and returns the
// collected values. Required variables reject empty answers, and answers
// must satisfy the variable's pattern when one is declared.
func Ask(ctx context.Context, driver Driver, variables []manifest.Variable) (template.Params, error) {
	out := make(template.Params, len(variables))
	for _, v := range variables {
		cfg := InputConfig{
			Message:   fmt.Sprintf("Value for %s:", v.Name),
			Default:   v.Default,
			Help:      v.Description,
			Validator: answerValidator(v),
		}

		answer, err := driver.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out[v.Name] = answer
	}
	return out, nil
}

func answerValidator(v manifest.Variable) func(string) error {
	if !v.Required && v.Pattern == "" {
		return nil
	}
	return func(answer string) error {
		if v.Required && answer == "" {
			return fmt.Errorf("%s is required", v.Name)
		}
		return v.Check(answer)
	}
}
