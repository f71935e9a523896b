package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/term"
)

func TestNewRegistrySeedsWellKnownPrefixes(t *testing.T) {
	r := NewRegistry()

	expected := map[string]string{
		"sn":   "https://sinople.org/ontology#",
		"rdf":  "https://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs": "https://www.w3.org/2000/01/rdf-schema#",
		"owl":  "https://www.w3.org/2002/07/owl#",
		"xsd":  "https://www.w3.org/2001/XMLSchema#",
	}

	for prefix, base := range expected {
		got, ok := r.Base(prefix)
		require.True(t, ok, "prefix %q must be seeded", prefix)
		assert.Equal(t, base, got)
	}

	assert.Equal(t, []string{"owl", "rdf", "rdfs", "sn", "xsd"}, r.Prefixes())
}

func TestResolve(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		input    string
		expected term.Term
		wantErr  bool
	}{
		{
			name:     "registered prefix expands",
			input:    "sn:Construct",
			expected: term.IRI("https://sinople.org/ontology#Construct"),
		},
		{
			name:     "rdf type expands",
			input:    "rdf:type",
			expected: term.IRI("https://www.w3.org/1999/02/22-rdf-syntax-ns#type"),
		},
		{
			name:     "empty local part expands to base",
			input:    "sn:",
			expected: term.IRI("https://sinople.org/ontology#"),
		},
		{
			name:     "full IRI passes through",
			input:    "https://example.org/thing",
			expected: term.IRI("https://example.org/thing"),
		},
		{
			name:     "unregistered scheme-like prefix wraps as IRI",
			input:    "urn:isbn:0451450523",
			expected: term.IRI("urn:isbn:0451450523"),
		},
		{
			name:    "no separator is not an IRI",
			input:   "justaword",
			wantErr: true,
		},
		{
			name:    "whitespace is malformed",
			input:   "https://example.org/a thing",
			wantErr: true,
		},
		{
			name:    "empty input is malformed",
			input:   "",
			wantErr: true,
		},
		{
			name:    "angle bracket is malformed",
			input:   "https://example.org/<x>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalid(err))
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equals(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestRegisterCustomPrefix(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("ex", "https://example.org/ns#"))

	got, err := r.Resolve("ex:Alpha")
	require.NoError(t, err)
	assert.Equal(t, term.IRI("https://example.org/ns#Alpha"), got)
}

func TestRegisterOverridesExisting(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("ex", "https://one.example/"))
	require.NoError(t, r.Register("ex", "https://two.example/"))

	base, ok := r.Base("ex")
	require.True(t, ok)
	assert.Equal(t, "https://two.example/", base)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register("", "https://example.org/"))
	assert.Error(t, r.Register("ex", "not an iri"))
	assert.Error(t, r.Register("ex", ""))
}

func TestIsValidIRI(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://example.org/a", true},
		{"urn:uuid:1234", true},
		{"mailto:a@example.org", true},
		{"", false},
		{"noscheme", false},
		{":nocolon-scheme", false},
		{"1http://bad-scheme-start", false},
		{"https://example.org/a b", false},
		{"https://example.org/\"quoted\"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidIRI(tt.input))
		})
	}
}

func TestVocabularyConstants(t *testing.T) {
	assert.Equal(t, "https://www.w3.org/1999/02/22-rdf-syntax-ns#type", RDFType)
	assert.Equal(t, "https://www.w3.org/2000/01/rdf-schema#label", RDFSLabel)
	assert.Equal(t, "https://sinople.org/ontology#Construct", ClassConstruct)
	assert.Equal(t, "https://sinople.org/ontology#hasGloss", HasGloss)
	assert.Equal(t, "https://sinople.org/ontology#relationshipType", RelationshipType)
}
