package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"

	ms "pfeifer.dev/scurve/settings"
)

const (
	actionExplore  = "Explore Profiles"
	actionSettings = "Edit Settings"
	actionShow     = "Show Settings"
	actionLast     = "Show Last Saved Profile"
	actionQuit     = "Quit"
)

func interactive() error {
	prompt := promptui.Select{
		Label: "Select Action",
		Items: []string{actionExplore, actionSettings, actionShow, actionLast, actionQuit},
	}

	_, result, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "prompt failed")
	}

	switch result {
	case actionExplore:
		return runUI(showExplorer)
	case actionSettings:
		return runUI(showSettings)
	case actionShow:
		return writeSettings(os.Stdout, ms.Settings)
	case actionLast:
		s, err := LastProfile()
		if err != nil {
			return err
		}
		fmt.Printf("%s\npeak velocity: %.3f m/s\nduration: %.3f s\nsegments: %d\nsamples: %d\n",
			s.Limits, s.PeakVelocity, s.Duration, s.Segments, s.Samples)
	}
	return nil
}

func runUI(state mainState) error {
	p := tea.NewProgram(initialModel(state), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "could not run terminal ui")
	}
	return nil
}
