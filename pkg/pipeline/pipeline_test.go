package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ramparte/amplifier-stories/pkg/cache"
	"github.com/ramparte/amplifier-stories/pkg/errors"
	"github.com/ramparte/amplifier-stories/pkg/layout"
	"github.com/ramparte/amplifier-stories/pkg/style"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// deckHTML builds a deck of n slides. Slides listed in overflow get forty
// loose paragraphs, enough to hit the compression floor.
func deckHTML(n int, overflow ...int) []byte {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<div class="slide"><h1>Slide %d</h1>`, i)
		for _, o := range overflow {
			if o == i {
				for j := 0; j < 40; j++ {
					fmt.Fprintf(&b, "<div>Paragraph %d of slide %d</div>", j, i)
				}
			}
		}
		b.WriteString("</div>")
	}
	b.WriteString("</body></html>")
	return []byte(b.String())
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"pptx", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"PPTX", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	assert.NoError(t, ValidateFormats([]string{"pptx", "png"}))
	assert.Error(t, ValidateFormats([]string{"pptx", "docx"}))
	assert.NoError(t, ValidateFormats(nil))
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, []string{"json", "pdf", "png", "pptx", "svg"}, FormatNames())
	for _, f := range FormatNames() {
		assert.NotEmpty(t, ContentTypes[f], f)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{HTML: deckHTML(1)}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultWorkers, opts.Workers)
	assert.Equal(t, []string{FormatPPTX}, opts.Formats)
	assert.Equal(t, DefaultPNGScale, opts.PNGScale)
	assert.NotNil(t, opts.Logger)

	// Idempotent: a second call keeps the values.
	opts.Workers = 2
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, 2, opts.Workers)
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	empty := Options{HTML: []byte("   ")}
	err := empty.ValidateAndSetDefaults()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	bad := Options{HTML: deckHTML(1), Formats: []string{"key"}}
	err = bad.ValidateAndSetDefaults()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestWorkersCapped(t *testing.T) {
	opts := Options{HTML: deckHTML(1), Workers: 1000}
	opts.SetLayoutDefaults()
	assert.Equal(t, MaxWorkers, opts.Workers)
}

func TestLayoutKeepsDocumentOrder(t *testing.T) {
	ctx := context.Background()
	opts := Options{HTML: deckHTML(12), Workers: 3}
	doc, err := Parse(ctx, opts)
	require.NoError(t, err)

	d, err := Layout(ctx, doc, opts)
	require.NoError(t, err)
	require.Len(t, d.Slides, 12)
	for i, s := range d.Slides {
		assert.Equal(t, i+1, s.Index)
		require.NotEmpty(t, s.Commands)
		assert.Contains(t, s.Commands[0].Texts(), fmt.Sprintf("Slide %d", i+1))
	}
}

func TestLayoutWarningsInSlideOrder(t *testing.T) {
	ctx := context.Background()
	opts := Options{HTML: deckHTML(6, 5, 2), Workers: 4}
	doc, err := Parse(ctx, opts)
	require.NoError(t, err)

	d, err := Layout(ctx, doc, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Slide 2: severe overflow — content scaled to 40%",
		"Slide 5: severe overflow — content scaled to 40%",
	}, d.Warnings)
}

func TestLayoutMatchesSequential(t *testing.T) {
	ctx := context.Background()
	opts := Options{HTML: deckHTML(8, 3), Workers: 8}
	doc, err := Parse(ctx, opts)
	require.NoError(t, err)

	got, err := Layout(ctx, doc, opts)
	require.NoError(t, err)
	want := layout.LayDeck(doc, layout.DocumentStyle(doc))
	assert.Equal(t, want, got)
}

func TestLayoutNoSlides(t *testing.T) {
	ctx := context.Background()
	opts := Options{HTML: []byte("<html><body><p>hello</p></body></html>")}
	doc, err := Parse(ctx, opts)
	require.NoError(t, err)

	d, err := Layout(ctx, doc, opts)
	require.NoError(t, err)
	assert.Empty(t, d.Slides)
	assert.Equal(t, []string{layout.NoSlidesWarning}, d.Warnings)
}

func TestLayoutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := Options{HTML: deckHTML(4)}
	doc, err := Parse(context.Background(), opts)
	require.NoError(t, err)

	_, err = Layout(ctx, doc, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayoutAppliesTheme(t *testing.T) {
	ctx := context.Background()
	theme, err := style.ParseTheme([]byte(`
[fonts]
body = "Inter"
`))
	require.NoError(t, err)
	opts := Options{HTML: deckHTML(1), Theme: theme}
	doc, err := Parse(ctx, opts)
	require.NoError(t, err)

	d, err := Layout(ctx, doc, opts)
	require.NoError(t, err)
	cmd := d.Slides[0].Commands[0]
	require.NotNil(t, cmd.Text)
	assert.Equal(t, "Inter", cmd.Text.Paragraphs[0].Runs[0].Font)
}

func TestRenderFormats(t *testing.T) {
	ctx := context.Background()
	opts := Options{HTML: deckHTML(2)}
	doc, err := Parse(ctx, opts)
	require.NoError(t, err)
	d, err := Layout(ctx, doc, opts)
	require.NoError(t, err)

	artifacts, err := Render(ctx, d, Options{Formats: []string{"pptx", "svg", "json"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(artifacts["pptx"], []byte("PK")), "pptx is a zip")
	assert.Contains(t, string(artifacts["svg"]), "<svg")
	assert.Contains(t, string(artifacts["json"]), `"slides"`)

	_, err = Render(ctx, d, Options{Formats: []string{"docx"}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{})
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, logger)
	defer r.Close()

	opts := Options{HTML: deckHTML(3, 2), Formats: []string{"pptx", "json"}}
	res, err := r.Execute(ctx, opts)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Stats.Slides)
	assert.Equal(t, res.Deck.CommandCount(), res.Stats.Commands)
	assert.Len(t, res.Warnings(), 1)
	assert.False(t, res.CacheInfo.LayoutHit)
	assert.False(t, res.CacheInfo.RenderHit)
	assert.Equal(t, cache.Hash(opts.HTML), res.HTMLHash)
	assert.Contains(t, logs.String(), "parsed deck")
	assert.Contains(t, logs.String(), "laid out slides")
	assert.Contains(t, logs.String(), "rendered outputs")

	again, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, again.CacheInfo.LayoutHit)
	assert.True(t, again.CacheInfo.RenderHit)
	assert.Equal(t, res.Artifacts["pptx"], again.Artifacts["pptx"])
	assert.Equal(t, res.Stats.Commands, again.Stats.Commands)
	assert.NotEqual(t, res.RunID, again.RunID)

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, fresh.CacheInfo.LayoutHit)
}

func TestRunnerPartialRenderCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))

	_, err = r.Execute(ctx, Options{HTML: deckHTML(1), Formats: []string{"pptx"}})
	require.NoError(t, err)

	res, err := r.Execute(ctx, Options{HTML: deckHTML(1), Formats: []string{"pptx", "svg"}})
	require.NoError(t, err)
	assert.True(t, res.CacheInfo.LayoutHit)
	assert.False(t, res.CacheInfo.RenderHit)
	assert.Len(t, res.Artifacts, 2)
}

func TestRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	assert.IsType(t, cache.NullCache{}, r.Cache)
	assert.IsType(t, cache.DefaultKeyer{}, r.Keyer)
	assert.NotNil(t, r.Logger)
	assert.NoError(t, r.Close())
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
