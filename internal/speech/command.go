package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command runs a local text-to-speech program, e.g.
// "espeak-ng -v {voice} {text}". The {text}, {lang} and {voice}
// placeholders are substituted per utterance; the process is killed when
// the utterance is cancelled.
type Command struct {
	name string
	args []string
}

func NewCommand(template string) (*Command, error) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty speech command")
	}
	return &Command{name: fields[0], args: fields[1:]}, nil
}

func (c *Command) Play(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, c.name, c.Args(u)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run %s: %w", c.name, err)
	}
	return nil
}

// Args expands the argument template for u.
func (c *Command) Args(u Utterance) []string {
	r := strings.NewReplacer("{text}", u.Text, "{lang}", u.Lang, "{voice}", voice(u.Lang))
	out := make([]string, len(c.args))
	for i, a := range c.args {
		out[i] = r.Replace(a)
	}
	return out
}

func voice(lang string) string {
	switch lang {
	case LangRussian:
		return "ru"
	case LangEnglish:
		return "en-us"
	default:
		return strings.ToLower(lang)
	}
}
