package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/device"
)

// ErrCanceled is returned when the user leaves the form.
var ErrCanceled = errors.New("canceled")

// formStep identifies the current step.
type formStep int

const (
	stepNetwork formStep = iota
	stepAddress
	stepPrivateKey
	stepPublicKey
	stepConfirm
)

// networkItem implements list.Item for network selection.
type networkItem struct {
	name        string
	description string
}

func (n networkItem) Title() string       { return n.name }
func (n networkItem) Description() string { return n.description }
func (n networkItem) FilterValue() string { return n.name }

// formModel collects a device identity step by step.
type formModel struct {
	step formStep

	networkList     list.Model
	addressInput    textinput.Model
	privateKeyInput textinput.Model
	publicKeyInput  textinput.Model

	identity device.Identity
	errMsg   string
	done     bool
	canceled bool
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 70
	if value != "" && value != config.Unset {
		ti.SetValue(value)
	}
	return ti
}

func newFormModel(defaults device.Identity) formModel {
	items := []list.Item{
		networkItem{config.NetworkMainnet, "Edge mainnet, stake with XE"},
		networkItem{config.NetworkTestnet, "Edge testnet"},
	}
	l := list.New(items, list.NewDefaultDelegate(), 60, 8)
	l.Title = "Network"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	if defaults.Network == config.NetworkTestnet {
		l.Select(1)
	}

	pk := newInput("private key", defaults.PrivateKey)
	pk.EchoMode = textinput.EchoPassword
	pk.EchoCharacter = '•'

	return formModel{
		step:            stepNetwork,
		networkList:     l,
		addressInput:    newInput("xe_...", defaults.Address),
		privateKeyInput: pk,
		publicKeyInput:  newInput("public key", defaults.PublicKey),
	}
}

func (f formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (f formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			f.canceled = true
			return f, tea.Quit
		case tea.KeyEsc:
			return f.back()
		}
	}

	switch f.step {
	case stepNetwork:
		return f.updateNetwork(msg)
	case stepAddress, stepPrivateKey, stepPublicKey:
		return f.updateInput(msg)
	case stepConfirm:
		return f.updateConfirm(msg)
	}
	return f, nil
}

// input returns the text input of the current step.
func (f *formModel) input() *textinput.Model {
	switch f.step {
	case stepAddress:
		return &f.addressInput
	case stepPrivateKey:
		return &f.privateKeyInput
	case stepPublicKey:
		return &f.publicKeyInput
	}
	return nil
}

func (f *formModel) goTo(step formStep) tea.Cmd {
	if ti := f.input(); ti != nil {
		ti.Blur()
	}
	f.step = step
	f.errMsg = ""
	if ti := f.input(); ti != nil {
		ti.Focus()
		return textinput.Blink
	}
	return nil
}

func (f formModel) back() (tea.Model, tea.Cmd) {
	if f.step == stepNetwork {
		f.canceled = true
		return f, tea.Quit
	}
	cmd := f.goTo(f.step - 1)
	return f, cmd
}

func (f formModel) updateNetwork(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		if item, ok := f.networkList.SelectedItem().(networkItem); ok {
			f.identity.Network = item.name
			cmd := f.goTo(stepAddress)
			return f, cmd
		}
		return f, nil
	}

	var cmd tea.Cmd
	f.networkList, cmd = f.networkList.Update(msg)
	return f, cmd
}

func (f formModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	ti := f.input()

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		value := strings.TrimSpace(ti.Value())
		if value == "" {
			f.errMsg = "a value is required"
			return f, nil
		}
		switch f.step {
		case stepAddress:
			f.identity.Address = value
		case stepPrivateKey:
			f.identity.PrivateKey = value
		case stepPublicKey:
			f.identity.PublicKey = value
		}
		cmd := f.goTo(f.step + 1)
		return f, cmd
	}

	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return f, cmd
}

func (f formModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			if err := f.identity.Validate(); err != nil {
				f.errMsg = err.Error()
				return f, nil
			}
			f.done = true
			return f, tea.Quit
		case "n":
			cmd := f.goTo(stepNetwork)
			return f, cmd
		}
	}
	return f, nil
}

// Result returns the collected identity once the form was confirmed.
func (f formModel) Result() (device.Identity, bool) {
	return f.identity, f.done && !f.canceled
}

func (f formModel) View() string {
	if f.done || f.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Add Edge Device"))
	b.WriteString("\n")
	b.WriteString(f.progressBar())
	b.WriteString("\n\n")

	switch f.step {
	case stepNetwork:
		b.WriteString(f.networkList.View())
	case stepAddress:
		b.WriteString(labelStyle.Render("Address"))
		b.WriteString("\n")
		b.WriteString(f.addressInput.View())
	case stepPrivateKey:
		b.WriteString(labelStyle.Render("Private key"))
		b.WriteString("\n")
		b.WriteString(f.privateKeyInput.View())
	case stepPublicKey:
		b.WriteString(labelStyle.Render("Public key"))
		b.WriteString("\n")
		b.WriteString(f.publicKeyInput.View())
	case stepConfirm:
		b.WriteString(fmt.Sprintf("  Network:    %s\n", valueStyle.Render(f.identity.Network)))
		b.WriteString(fmt.Sprintf("  Address:    %s\n", valueStyle.Render(f.identity.Address)))
		b.WriteString(fmt.Sprintf("  Public key: %s\n", valueStyle.Render(f.identity.PublicKey)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Enter to add the device, n to restart, Esc to go back."))
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(failStyle.Render("✗ " + f.errMsg))
	}
	b.WriteString("\n")

	return b.String()
}

func (f formModel) progressBar() string {
	names := []string{"Network", "Address", "Private key", "Public key", "Confirm"}

	var parts []string
	for i, name := range names {
		label := fmt.Sprintf("%d. %s", i+1, name)
		if formStep(i) == f.step {
			parts = append(parts, selectedStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	return strings.Join(parts, dimStyle.Render(" > "))
}

// RunDeviceForm asks for a device identity, prefilled from defaults.
func RunDeviceForm(defaults device.Identity) (device.Identity, error) {
	p := tea.NewProgram(newFormModel(defaults))
	final, err := p.Run()
	if err != nil {
		return device.Identity{}, err
	}
	id, ok := final.(formModel).Result()
	if !ok {
		return device.Identity{}, ErrCanceled
	}
	return id, nil
}
