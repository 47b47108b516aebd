package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArtifactURL(t *testing.T) {
	a := &Artifacts{BaseURL: "https://example.com/builds"}
	require.Equal(t, "https://example.com/builds/cart.zip", a.URL("cart.zip"))

	a.Version = "1.2.0"
	require.Equal(t, "https://example.com/builds/1.2.0/cart.zip", a.URL("cart.zip"))

	a.BaseURL = "https://example.com/builds/"
	require.Equal(t, "https://example.com/builds/1.2.0/cart.zip", a.URL("cart.zip"))
}

func TestArtifactVersionValidation(t *testing.T) {
	require.NoError(t, (&Artifacts{BaseURL: "https://example.com", Version: "v1.2.3"}).Validate())
	require.Error(t, (&Artifacts{BaseURL: "https://example.com", Version: "not a version"}).Validate())
	require.Error(t, (&Artifacts{}).Validate())
}

func TestIsDowngradeFrom(t *testing.T) {
	a := &Artifacts{Version: "1.1.0"}
	require.True(t, a.IsDowngradeFrom("1.2.0"))
	require.False(t, a.IsDowngradeFrom("1.0.0"))
	require.False(t, a.IsDowngradeFrom("1.1.0"))
	require.False(t, a.IsDowngradeFrom(""))
	require.False(t, (&Artifacts{}).IsDowngradeFrom("1.0.0"))
}
