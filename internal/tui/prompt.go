package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Choice is one entry of a Select prompt.
type Choice struct {
	Label string
	Value int
}

// MockPrompts replaces the interactive prompts in tests. Nil funcs fall
// through to the real prompt.
type MockPrompts struct {
	PlaintextInputFunc func(title, initial string) (string, error)
	HiddenInputFunc    func(title string) (string, error)
	SelectFunc         func(title string, choices []Choice) (int, error)
}

var mock *MockPrompts

func SetMock(m *MockPrompts) {
	mock = m
}

func ClearMock() {
	mock = nil
}

func PlaintextInput(title, initial string) (string, error) {
	if mock != nil && mock.PlaintextInputFunc != nil {
		return mock.PlaintextInputFunc(title, initial)
	}
	result := initial
	err := huh.NewInput().
		Title(title).
		Value(&result).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return result, nil
}

func HiddenInput(title string) (string, error) {
	if mock != nil && mock.HiddenInputFunc != nil {
		return mock.HiddenInputFunc(title)
	}
	var result string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&result).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return result, nil
}

func Select(title string, choices []Choice) (int, error) {
	if mock != nil && mock.SelectFunc != nil {
		return mock.SelectFunc(title, choices)
	}
	options := make([]huh.Option[int], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, c.Value)
	}
	var result int
	err := huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&result).
		Run()
	if err != nil {
		return 0, fmt.Errorf("prompt: %w", err)
	}
	return result, nil
}
