package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/k0sproject/rig"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"

	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1"
	"github.com/nacternals/roboshop/pkg/apis/roboshop.nacternals.io/v1beta1/stack"
)

// datastoreRoles go to the first host, appRoles are spread over the rest
var (
	datastoreRoles = []string{"mongodb", "mysql", "redis", "rabbitmq"}
	appRoles       = []string{"web", "catalogue", "user", "cart", "shipping", "payment", "dispatch"}
)

// buildHosts creates a host collection for the given addresses, the first
// address receives the datastore roles and the application roles are
// spread round-robin over the remaining ones. A single address gets
// everything.
func buildHosts(addresses []string, user, keyPath string) stack.Hosts {
	var hosts stack.Hosts
	for _, addr := range addresses {
		// strip trailing comments
		if idx := strings.Index(addr, "#"); idx >= 0 {
			addr = addr[:idx]
		}
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}

		ssh := &rig.SSH{Address: addr}
		if user != "" {
			ssh.User = user
		}
		if keyPath != "" {
			ssh.KeyPath = &keyPath
		}

		hosts = append(hosts, &stack.Host{Connection: rig.Connection{SSH: ssh}})
	}

	if len(hosts) == 0 {
		return hosts
	}

	if len(hosts) == 1 {
		hosts[0].Roles = append(append([]string{}, datastoreRoles...), appRoles...)
		return hosts
	}

	hosts[0].Roles = append([]string{}, datastoreRoles...)
	for i, role := range appRoles {
		h := hosts[1+i%(len(hosts)-1)]
		h.Roles = append(h.Roles, role)
	}

	return hosts
}

var initCommand = &cli.Command{
	Name:      "init",
	Usage:     "Create a configuration template",
	ArgsUsage: "[ADDRESS ...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "user",
			Usage:   "Host user for the generated template",
			Aliases: []string{"u"},
		},
		&cli.StringFlag{
			Name:    "key-path",
			Usage:   "SSH key path for the generated template",
			Aliases: []string{"i"},
		},
	},
	Description: "Outputs a roboshop.yaml template. Host addresses are read from the arguments or stdin, one per line.",
	Action: func(ctx *cli.Context) error {
		addresses := ctx.Args().Slice()

		// read addresses from stdin when piped in
		if len(addresses) == 0 {
			if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					addresses = append(addresses, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}
		}

		if len(addresses) == 0 {
			addresses = []string{"10.0.0.1", "10.0.0.2"}
		}

		cfg := v1beta1.Stack{
			APIVersion: v1beta1.APIVersion,
			Kind:       "Stack",
			Metadata:   &v1beta1.StackMetadata{Name: "roboshop"},
			Spec: &stack.Spec{
				Hosts:     buildHosts(addresses, ctx.String("user"), ctx.String("key-path")),
				Artifacts: stack.DefaultArtifacts(),
			},
		}

		if err := defaults.Set(&cfg); err != nil {
			return err
		}

		encoder := yaml.NewEncoder(os.Stdout)
		return encoder.Encode(&cfg)
	},
}
