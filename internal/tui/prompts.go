package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via SVN_REBASE_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (SVN_REBASE_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled or there is no terminal
func checkInteractiveAllowed() error {
	if os.Getenv("SVN_REBASE_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	if !IsTTY() {
		return fmt.Errorf("cannot prompt for confirmation: not a terminal")
	}
	return nil
}

// PromptConfirm asks a yes/no question and returns the answer
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	answer := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer, nil
}
