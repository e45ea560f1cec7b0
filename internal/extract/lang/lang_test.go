package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllSpecsHaveUniqueNamesAndExtensions(t *testing.T) {
	require.NotEmpty(t, All)

	seenName := make(map[string]bool)
	seenExt := make(map[string]string)
	for _, s := range All {
		require.NotEmpty(t, s.Name)
		require.False(t, seenName[s.Name], "duplicate language name %q", s.Name)
		seenName[s.Name] = true

		require.NotNil(t, s.Sitter, "%s: Sitter must be set", s.Name)
		require.NotNil(t, s.IsExported, "%s: IsExported must be set", s.Name)
		require.NotEmpty(t, s.Symbols, "%s: Symbols table must not be empty", s.Name)

		for _, ext := range s.Extensions {
			if owner, ok := seenExt[ext]; ok {
				t.Errorf("extension %q claimed by both %s and %s", ext, owner, s.Name)
			}
			seenExt[ext] = s.Name
		}
	}
}

func TestFuncNameFieldDefaultsToName(t *testing.T) {
	s := &Spec{}
	require.Equal(t, "name", s.FuncNameField("anything"))

	s.NameField = map[string]string{"block_mapping_pair": "key"}
	require.Equal(t, "key", s.FuncNameField("block_mapping_pair"))
	require.Equal(t, "name", s.FuncNameField("other_node"))
}
