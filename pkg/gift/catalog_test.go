package gift

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Accessors(t *testing.T) {
	c := Default()

	assert.Equal(t, 2, c.Len())

	g, err := c.Gift(1)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Ordinal)
	assert.Equal(t, "The Birthday Bard", g.Name)
	assert.True(t, g.Customizable)

	g2, err := c.Gift(2)
	require.NoError(t, err)
	assert.Equal(t, 2, g2.Ordinal)
	assert.False(t, g2.Customizable)

	_, err = c.Gift(0)
	assert.ErrorIs(t, err, ErrOrdinalOutOfRange)
	_, err = c.Gift(3)
	assert.ErrorIs(t, err, ErrOrdinalOutOfRange)

	answers, err := c.Answers(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, answers)
}

func TestCatalog_UnlockDelay(t *testing.T) {
	c := NewCatalog("test", []Gift{
		{Name: "one", Question: "q1", Answers: []string{"a"}},
		{Name: "two", Question: "q2", Answers: []string{"b"}},
		{Name: "three", Question: "q3", Answers: []string{"c"}},
	}, map[int]time.Duration{1: 0, 2: time.Hour})

	d, err := c.UnlockDelay(1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)

	d, err = c.UnlockDelay(2)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	_, err = c.UnlockDelay(3)
	assert.ErrorIs(t, err, ErrNoUnlockDelay)

	_, err = c.UnlockDelay(4)
	assert.ErrorIs(t, err, ErrOrdinalOutOfRange)
}

func TestCatalog_GiftReturnsCopy(t *testing.T) {
	c := Default()
	g, err := c.Gift(1)
	require.NoError(t, err)
	g.Answers[0] = "red"
	g.Name = "changed"

	again, err := c.Gift(1)
	require.NoError(t, err)
	assert.Equal(t, "blue", again.Answers[0])
	assert.Equal(t, "The Birthday Bard", again.Name)
}

func TestGift_Accepts(t *testing.T) {
	g, err := Default().Gift(1)
	require.NoError(t, err)

	tests := []struct {
		guess string
		want  bool
	}{
		{"blue", true},
		{"Blue", true},
		{" blue ", true},
		{"BLUE", true},
		{"cyan", true},
		{"sky blue", true},
		{"skyblue", true},
		{"Sky  Blue", true},
		{"red", false},
		{"", false},
		{"   ", false},
		{"blue-ish", false},
	}

	for _, tt := range tests {
		t.Run(tt.guess, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Accepts(tt.guess))
		})
	}
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "skyblue", NormalizeAnswer("  Sky\tBlue\n"))
	assert.Equal(t, "éclair", NormalizeAnswer("ÉCLAIR"))
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`{
		"name": "mini",
		"gifts": [
			{"name": "First", "question": "q1?", "answers": ["yes"], "content": "c1",
			 "customizable": true, "customization_prompt": "tell me how", "unlock_after": "0s"},
			{"name": "Second", "question": "q2?", "answers": ["no"], "content": "c2", "unlock_after": "90m"}
		]
	}`)

	c, err := ParseCatalog(data)
	require.NoError(t, err)
	assert.Equal(t, "mini", c.Name)
	assert.Equal(t, 2, c.Len())

	d, err := c.UnlockDelay(2)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	g, err := c.Gift(1)
	require.NoError(t, err)
	assert.True(t, g.Customizable)
	assert.Equal(t, "tell me how", g.CustomizationPrompt)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "unknown field",
			data:    `{"gifts":[{"name":"a","question":"q","answers":["x"],"color":"red"}]}`,
			wantErr: "unknown field",
		},
		{
			name:    "bad duration",
			data:    `{"gifts":[{"name":"a","question":"q","answers":["x"],"unlock_after":"soon"}]}`,
			wantErr: "invalid unlock_after",
		},
		{
			name:    "no gifts",
			data:    `{"gifts":[]}`,
			wantErr: "catalog has no gifts",
		},
		{
			name: "missing interval",
			data: `{"gifts":[{"name":"a","question":"q","answers":["x"]},
				{"name":"b","question":"q","answers":["y"]}]}`,
			wantErr: "gift 2: unlock_after is required",
		},
		{
			name:    "duplicate normalized answers",
			data:    `{"gifts":[{"name":"a","question":"q","answers":["Sky Blue","skyblue"]}]}`,
			wantErr: "duplicate answer",
		},
		{
			name:    "customizable without prompt",
			data:    `{"gifts":[{"name":"a","question":"q","answers":["x"],"customizable":true}]}`,
			wantErr: "customization_prompt",
		},
		{
			name:    "negative delay",
			data:    `{"gifts":[{"name":"a","question":"q","answers":["x"],"unlock_after":"-1h"}]}`,
			wantErr: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weekend_hunt.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gifts":[{"name":"a","question":"q","answers":["x"]}]}`), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "weekend_hunt", c.Name)

	_, err = LoadCatalog(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog not found")
}

func TestParseCatalogYAML(t *testing.T) {
	data := []byte(`
name: mini
gifts:
  - name: First
    question: q1?
    answers: [yes please]
    content: c1
    customizable: true
    customization_prompt: tell me how
    unlock_after: 0s
  - name: Second
    question: q2?
    answers: ["no"]
    content: c2
    unlock_after: 2h30m
`)

	c, err := ParseCatalogYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "mini", c.Name)
	assert.Equal(t, 2, c.Len())

	g, err := c.Gift(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"yes please"}, g.Answers)
	assert.True(t, g.Customizable)
	assert.Equal(t, "tell me how", g.CustomizationPrompt)

	d, err := c.UnlockDelay(2)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Minute, d)
}

func TestParseCatalogYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty document", data: "", wantErr: "empty document"},
		{name: "unknown key", data: "gifts:\n  - name: a\n    question: q\n    answers: [x]\n    color: red\n", wantErr: "color"},
		{name: "bad duration", data: "gifts:\n  - name: a\n    question: q\n    answers: [x]\n    unlock_after: soon\n", wantErr: "invalid unlock_after"},
		{name: "no gifts", data: "name: empty\ngifts: []\n", wantErr: "catalog has no gifts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalogYAML([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "road_trip.yml")
	require.NoError(t, os.WriteFile(path, []byte("gifts:\n  - name: a\n    question: q\n    answers: [x]\n"), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "road_trip", c.Name)
	assert.True(t, IsYAML(path))
	assert.False(t, IsYAML("road_trip.json"))
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestShippedCatalogMatchesDefault(t *testing.T) {
	shipped, err := LoadCatalog(filepath.Join("..", "..", "data", "catalogs", "birthday.json"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Name, shipped.Name)
	assert.Equal(t, def.Gifts(), shipped.Gifts())
	for ordinal := 1; ordinal <= def.Len(); ordinal++ {
		want, err := def.UnlockDelay(ordinal)
		require.NoError(t, err)
		got, err := shipped.UnlockDelay(ordinal)
		require.NoError(t, err)
		assert.Equal(t, want, got, "gift %d", ordinal)
	}
}
