package pofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Fire Shard", "fire shard"},
		{"<Emphasis>Fire Shard</Emphasis>", "fire shard"},
		{"  Potion of Strength  ", "potion of strength"},
		{"Hi-Potion (HQ)", "hi-potion hq"},
		{`"Wait, what?!"`, "wait what"},
		{"Lominsan Anchovy: Grade 2; Fresh.", "lominsan anchovy grade 2 fresh"},
		{"Rabbit’s Foot", "rabbits foot"},
		{"<<b>i>Nested</i>", "nested"},
		{"ÉCU", "écu"},
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Fire Shard",
		"<Emphasis>Fire Shard</Emphasis>",
		"  <i> Spaced </i>  ",
		"<<b>i>Nested</i>",
		"A < B > C",
		"Ｆｕｌｌ Ｗｉｄｔｈ",
		"e\u0301clair",
		"Straße",
		"İstanbul",
		"(\"'.,?!:;)",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "strict: %q", in)

		onceMarkup := NormalizeMarkup(in)
		assert.Equal(t, onceMarkup, NormalizeMarkup(onceMarkup), "markup: %q", in)
	}
}

func TestNormalize_CaseAndMarkupInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("fire shard"), Normalize("<Emphasis>Fire Shard</Emphasis>"))
	assert.Equal(t, Normalize("FIRE SHARD"), Normalize("Fire Shard"))
}

func TestNormalize_ComposesAccents(t *testing.T) {
	assert.Equal(t, "\u00e9clair", Normalize("E\u0301clair"))
}

func TestNormalizeMarkup_KeepsPunctuation(t *testing.T) {
	assert.Equal(t, "hi-potion (hq)", NormalizeMarkup("<Emphasis>Hi-Potion (HQ)</Emphasis>"))
	assert.NotEqual(t, NormalizeMarkup("Fire Shard."), NormalizeMarkup("Fire Shard"))
}

func TestNormalizerFor(t *testing.T) {
	n, err := NormalizerFor("")
	require.NoError(t, err)
	assert.Equal(t, "a b", n("A, B."))

	n, err = NormalizerFor("Strict")
	require.NoError(t, err)
	assert.Equal(t, "a b", n("A, B."))

	n, err = NormalizerFor("markup")
	require.NoError(t, err)
	assert.Equal(t, "a, b.", n("A, B."))

	_, err = NormalizerFor("fuzzy")
	require.ErrorIs(t, err, ErrUnknownNormalizer)
	assert.Contains(t, err.Error(), "fuzzy")
}
