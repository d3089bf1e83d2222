package tui

import (
	"fmt"

	"github.com/rivo/tview"

	currencyinput "github.com/goliatone/go-currency-input"
)

const footerText = "Type digits to enter an amount | '-' toggles the sign when allowed | Tab to switch field | Esc to quit"

// App is the interactive currency field demo.
type App struct {
	app       *tview.Application
	root      *tview.Flex
	input     *tview.InputField
	host      *FieldHost
	locales   *tview.DropDown
	negatives *tview.Checkbox
	status    *tview.TextView
	footer    *tview.TextView
	focus     []tview.Primitive

	ctrl *currencyinput.Controller
}

// New builds the demo from controller options.
func New(opts ...currencyinput.Option) (*App, error) {
	SetupTheme()

	a := &App{}
	a.input = tview.NewInputField().
		SetLabel("Amount   ").
		SetFieldWidth(40)
	a.host = NewFieldHost(a.input)

	a.status = tview.NewTextView().SetDynamicColors(true)
	a.status.SetBorder(true).SetTitle("Value")

	hook := currencyinput.FormatHookFuncs{After: a.updateStatus}
	cfg, err := currencyinput.NewConfig(append(opts, currencyinput.WithFormatHooks(hook))...)
	if err != nil {
		return nil, err
	}
	a.ctrl, err = cfg.BuildController(a.host)
	if err != nil {
		return nil, err
	}

	locales := cfg.Catalog.Locales()
	a.locales = tview.NewDropDown().SetLabel("Locale   ")
	a.locales.SetOptions(locales, nil)
	for index, locale := range locales {
		if locale == cfg.LocaleID {
			a.locales.SetCurrentOption(index)
			break
		}
	}
	a.locales.SetSelectedFunc(a.selectLocale)

	a.negatives = tview.NewCheckbox().
		SetLabel("Negative ").
		SetChecked(cfg.AllowNegative).
		SetChangedFunc(a.ctrl.SetAllowNegativeValues)

	a.footer = tview.NewTextView().
		SetText(footerText).
		SetTextAlign(tview.AlignCenter)
	a.footer.SetBorder(true)

	form := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.input, 1, 0, true).
		AddItem(a.locales, 1, 0, false).
		AddItem(a.negatives, 1, 0, false)
	form.SetBorder(true).SetTitle("Currency input")

	a.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 5, 0, true).
		AddItem(a.status, 0, 1, false).
		AddItem(a.footer, 3, 0, false)

	a.focus = []tview.Primitive{a.input, a.locales, a.negatives}
	a.app = tview.NewApplication().
		SetRoot(a.root, true).
		SetFocus(a.input)
	SetupKeyBindings(a)

	a.renderStatus(a.ctrl.Result(), nil)
	return a, nil
}

// Run blocks until the user quits.
func (a *App) Run() error {
	return a.app.Run()
}

// Controller returns the controller bound to the amount field.
func (a *App) Controller() *currencyinput.Controller {
	return a.ctrl
}

func (a *App) selectLocale(locale string, _ int) {
	if err := a.ctrl.SetLocale(locale); err != nil {
		a.status.SetText(fmt.Sprintf("[red]%v[-]", err))
	}
}

func (a *App) updateStatus(ctx *currencyinput.FormatHookContext) {
	a.renderStatus(ctx.Result, ctx.Error)
}

func (a *App) renderStatus(result currencyinput.FormatResult, err error) {
	if a.ctrl == nil {
		return
	}
	profile := a.ctrl.Profile()

	text := fmt.Sprintf("Raw value   [yellow]%d[-]\nCursor      %d\nLocale      %s\nCurrency    %s (%d digits)\nStep        %s",
		result.MinorUnitsValue,
		result.CursorIndex,
		profile.LocaleID,
		profile.CurrencyCode,
		profile.DecimalDigits,
		stepLabel(result.Step),
	)
	if amount, amountErr := a.ctrl.Amount(); amountErr == nil {
		text += fmt.Sprintf("\nAmount      %s", amount)
	}
	if result.RolledBack {
		text += fmt.Sprintf("\n[red]Rejected: %v[-]", err)
	}
	a.status.SetText(text)
}

func stepLabel(step currencyinput.FallbackStep) string {
	if step == "" {
		return "-"
	}
	return string(step)
}
