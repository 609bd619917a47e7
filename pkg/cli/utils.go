package cli

import (
	"github.com/secmon-lab/greetr/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, flag := range flags {
		result = append(result, flag...)
	}
	return result
}

// greetFlags binds the name and style flags shared by the greeting commands.
// The language comes from the root --lang flag.
func greetFlags(req *usecase.GreetRequest) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "first",
			Usage:       "First name",
			Category:    "greeting",
			Destination: &req.FirstName,
		},
		&cli.StringFlag{
			Name:        "last",
			Usage:       "Last name",
			Category:    "greeting",
			Destination: &req.LastName,
		},
		&cli.BoolFlag{
			Name:        "formal",
			Usage:       "Use the formal greeting",
			Category:    "greeting",
			Destination: &req.Formal,
		},
		&cli.BoolFlag{
			Name:        "login",
			Usage:       "Also write the login line",
			Category:    "greeting",
			Destination: &req.Login,
		},
	}
}
