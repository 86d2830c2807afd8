package cli

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag.
type dateValue struct {
	d *civil.Date
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(p *civil.Date) *dateValue {
	return &dateValue{d: p}
}

func (v *dateValue) String() string {
	if v.d == nil || !v.d.IsValid() {
		return ""
	}
	return v.d.String()
}

func (v *dateValue) Set(s string) error {
	d, err := calendar.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *dateValue) Type() string { return "date" }

// hourValue accepts "14", "14h" or "14:00". Hours outside the working
// window read as the morning start.
type hourValue struct {
	h *int
}

var _ pflag.Value = (*hourValue)(nil)

func newHourValue(p *int) *hourValue {
	return &hourValue{h: p}
}

func (v *hourValue) String() string {
	if v.h == nil {
		return ""
	}
	return strconv.Itoa(*v.h)
}

func (v *hourValue) Set(s string) error {
	*v.h = calendar.ParseHour(s)
	return nil
}

func (v *hourValue) Type() string { return "hour" }

// boardFlags selects the visible window used for pixel operations.
type boardFlags struct {
	from, to    civil.Date
	columnWidth float64
}

func (b *boardFlags) register(fs *pflag.FlagSet) {
	fs.Var(newDateValue(&b.from), "from", "First visible day (YYYY-MM-DD, default: Monday of the current week)")
	fs.Var(newDateValue(&b.to), "to", "Last visible day (YYYY-MM-DD, default: two weeks after --from)")
	fs.Float64Var(&b.columnWidth, "column-width", 0, "Day column width in pixels (default from CHANTIER_COLUMN_WIDTH)")
}

// window resolves the visible range, anchored on anchor when --from is unset.
func (b *boardFlags) window(app *App, anchor civil.Date) (from, to civil.Date, width float64) {
	from = b.from
	if !from.IsValid() {
		from = mondayOf(anchor)
	}
	to = b.to
	if !to.IsValid() {
		to = from.AddDays(13)
	}
	width = b.columnWidth
	if width <= 0 {
		width = app.columnWidth()
	}
	return from, to, width
}

func mondayOf(d civil.Date) civil.Date {
	offset := (int(calendar.Weekday(d)) + 6) % 7
	return d.AddDays(-offset)
}
