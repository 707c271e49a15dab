package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/arcana/am"
	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/intake"
	"github.com/teranos/arcana/report"
)

// now is the clock used for age checks.
var now = time.Now

// demoClients are used with --demo.
var demoClients = map[report.Scenario][]intake.Input{
	report.ScenarioAdult:  {{Name: "John", Birthday: "7.12.1963", Gender: "M"}},
	report.ScenarioChild:  {{Name: "John", Birthday: "6.02.2019", Gender: "M"}},
	report.ScenarioCouple: {{Name: "John", Birthday: "7.12.1963", Gender: "F"}, {Name: "Jul", Birthday: "23.7.1982", Gender: "M"}},
}

func addClientFlags(cmd *cobra.Command, usage string) {
	cmd.Flags().StringArrayP("client", "c", nil, usage)
	cmd.Flags().Bool("demo", false, "Use built-in demo clients")
}

// parseClientSpec splits "name,dd.mm.yyyy,gender".
func parseClientSpec(spec string) (intake.Input, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return intake.Input{}, errors.WithHint(
			errors.NewInvalidArgumentError("client %q must have three comma-separated fields", spec),
			`example: --client "Anna,15.05.1990,F"`,
		)
	}
	return intake.Input{
		Name:     strings.TrimSpace(parts[0]),
		Birthday: strings.TrimSpace(parts[1]),
		Gender:   strings.TrimSpace(parts[2]),
	}, nil
}

// readClients validates the --client flags of cmd (or the demo set for
// scenario) against class. want is the required client count.
func readClients(cmd *cobra.Command, scenario report.Scenario, class intake.AgeClass, want int) ([]arcane.Client, error) {
	var inputs []intake.Input
	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		inputs = demoClients[scenario]
	} else {
		specs, _ := cmd.Flags().GetStringArray("client")
		for _, s := range specs {
			in, err := parseClientSpec(s)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, in)
		}
	}
	if len(inputs) != want {
		return nil, errors.WithHint(
			errors.NewInvalidArgumentError("expected %d client(s), got %d", want, len(inputs)),
			`pass --client "name,dd.mm.yyyy,gender" or --demo`,
		)
	}

	clients := make([]arcane.Client, 0, len(inputs))
	for _, in := range inputs {
		c, err := intake.NewClient(in, class, now())
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// oneClient reads exactly one client of any age.
func oneClient(cmd *cobra.Command) (arcane.Client, error) {
	clients, err := readClients(cmd, report.ScenarioAdult, intake.AnyAge, 1)
	if err != nil {
		return arcane.Client{}, err
	}
	return clients[0], nil
}

// LoadConfig returns the configuration selected by the --config flag, or the
// merged cascade without it.
func LoadConfig(cmd *cobra.Command) (*am.Config, error) {
	var (
		cfg *am.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = am.LoadFromFile(path)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// configPath is the file a --watch reload follows: --config, else the
// highest-precedence file of the cascade.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	files := am.ConfigFiles()
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1].Path
}
