package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	ms "pfeifer.dev/scurve/settings"
	"pfeifer.dev/scurve/utils"
)

func Handle() {
	ms.Settings.Load()

	cmd := NewCommand(ms.Settings)
	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		utils.Logwe(err)
		fmt.Fprintln(os.Stderr, Message(err))
		os.Exit(ExitCode(err))
	}
}

// NewCommand builds the command tree. Flag defaults come from s.
func NewCommand(s ms.ProfileSettings) *cli.Command {
	return &cli.Command{
		Name:  "scurve",
		Usage: "Plan jerk limited point to point moves",
		Commands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "Plan a move and print its samples",
				Flags: append(limitFlags(s),
					&cli.StringFlag{
						Category: "Inputs and Outputs",
						Name:     "format",
						Aliases:  []string{"f"},
						Usage:    "Output format: text, json or csv",
						Value:    "text",
					},
					&cli.StringFlag{
						Category: "Inputs and Outputs",
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Write to this file instead of stdout",
					},
					&cli.IntFlag{
						Category: "Inputs and Outputs",
						Name:     "every",
						Usage:    "Print every nth sample in text and csv output",
						Value:    10,
					},
					&cli.BoolFlag{
						Category: "Inputs and Outputs",
						Name:     "save",
						Usage:    "Remember the summary as the last profile",
					},
				),
				Action: planAction,
			},
			{
				Name:      "at",
				Usage:     "Print the state of a move at a time",
				ArgsUsage: "<time in seconds>",
				Flags:     limitFlags(s),
				Action:    atAction,
			},
			{
				Name:  "export",
				Usage: "Plot a move to png, svg, pdf, jpg, html or csv",
				Flags: append(limitFlags(s),
					&cli.StringFlag{
						Category: "Inputs and Outputs",
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "The file to write, the extension picks the format",
						Value:    defaultExportPath(s),
					},
					&cli.Float64Flag{
						Category: "Inputs and Outputs",
						Name:     "at",
						Usage:    "Draw a cursor line at this time in seconds",
					},
					&cli.Float64Flag{
						Category: "Inputs and Outputs",
						Name:     "width",
						Usage:    "Image width in inches",
						Value:    s.PlotWidth,
					},
					&cli.Float64Flag{
						Category: "Inputs and Outputs",
						Name:     "height",
						Usage:    "Image height in inches",
						Value:    s.PlotHeight,
					},
				),
				Action: exportAction,
			},
			{
				Name:      "batch",
				Usage:     "Plan every move of a yaml batch file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "How many moves to plan at once",
						Value:   s.BatchWorkers,
					},
				},
				Action: batchAction,
			},
			settingsCommand(),
			{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Explore profiles and edit settings in the terminal",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return interactive()
				},
			},
		},
	}
}

func limitFlags(s ms.ProfileSettings) []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "distance",
			Aliases:  []string{"d"},
			Usage:    "Distance to travel in metres",
			Value:    s.Distance,
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "max-velocity",
			Aliases:  []string{"v"},
			Usage:    "Velocity cap in m/s",
			Value:    s.MaxVelocity,
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "max-acceleration",
			Aliases:  []string{"a"},
			Usage:    "Acceleration cap in m/s²",
			Value:    s.MaxAcceleration,
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "max-jerk",
			Aliases:  []string{"j"},
			Usage:    "Jerk cap in m/s³",
			Value:    s.MaxJerk,
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "dt",
			Usage:    "Sampling time step in seconds",
			Value:    s.TimeStep,
		},
	}
}
