package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"farmbot/backend"
	"farmbot/config"
	"farmbot/model"
)

// session is a controller driven from the command line instead of the
// interactive view
type session struct {
	cfg    *config.Config
	client *backend.Client
	form   *model.MemoryForm
	ctrl   *model.Controller
}

func (o *rootOptions) openSession() (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := backend.NewClient(cfg.BackendURL, nil)
	if err != nil {
		return nil, err
	}

	form := model.NewFilterForm()
	ctrl := model.NewController(client, form, model.ControllerOptions{
		Timeout:   cfg.RequestTimeout,
		ChartKind: model.ChartKind(cfg.ChartKind),
	})
	// No timer loop to drive the carousel
	ctrl.Tips = nil

	return &session{cfg: cfg, client: client, form: form, ctrl: ctrl}, nil
}

// filterFlags are the six filter controls as flags
type filterFlags struct {
	soil     string
	month    string
	season   string
	landType string
	landSize string
	climate  string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.soil, "soil", "", "Soil type filter")
	fs.StringVar(&f.month, "month", "", "Month filter")
	fs.StringVar(&f.season, "season", "", "Season filter")
	fs.StringVar(&f.landType, "land-type", "", "Land type filter")
	fs.StringVar(&f.landSize, "land-size", model.DefaultLandSize, "Land size in acres")
	fs.StringVar(&f.climate, "climate", "", "Climate condition filter (Drought or Flood)")
}

type selectorFlag struct {
	name  string
	id    model.ControlID
	value string
}

func (f *filterFlags) selectors() []selectorFlag {
	return []selectorFlag{
		{"soil", model.ControlSoilType, f.soil},
		{"month", model.ControlMonth, f.month},
		{"season", model.ControlSeason, f.season},
		{"land-type", model.ControlLandType, f.landType},
		{"climate", model.ControlClimate, f.climate},
	}
}

// needsOptions reports whether any server-backed selector flag is set
func (f *filterFlags) needsOptions() bool {
	return f.soil != "" || f.month != "" || f.season != "" || f.landType != ""
}

// applyFilters loads option lists when needed and sets the form from flags.
// Values match options case-insensitively.
func (s *session) applyFilters(f *filterFlags) error {
	if f.needsOptions() {
		s.ctrl.Settle(s.ctrl.Options.LoadAll())
	}

	for _, sel := range f.selectors() {
		if sel.value == "" {
			continue
		}

		choices, _ := s.form.Options(sel.id)
		if len(choices) == 0 {
			return fmt.Errorf("invalid --%s %q: no options available from %s", sel.name, sel.value, s.cfg.BackendURL)
		}

		value, ok := resolveChoice(choices, sel.value)
		if !ok || !s.form.SetValue(sel.id, value) {
			return fmt.Errorf("invalid --%s %q (choose from: %s)", sel.name, sel.value, strings.Join(choices, ", "))
		}
	}

	s.form.SetValue(model.ControlLandSize, f.landSize)
	return nil
}

func resolveChoice(choices []string, value string) (string, bool) {
	for _, c := range choices {
		if strings.EqualFold(c, strings.TrimSpace(value)) {
			return c, true
		}
	}
	return "", false
}
