package version

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestFull includes the program name and every build field.
func TestFull(t *testing.T) {
	t.Parallel()

	full := Full("powerapps-cli")

	require.NotEmpty(t, Short())
	require.Contains(t, full, "powerapps-cli version: "+Short())
	require.Contains(t, full, "commit: "+Commit)
	require.Contains(t, full, "built at: "+BuildTime)
}

// TestAttachCobraVersionCommand prints the version line through cobra.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "powerapps-cli"}
	AttachCobraVersionCommand(root)

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, Full("powerapps-cli")+"\n", out.String())

	versionCmd, _, err := root.Find([]string{"version"})
	require.NoError(t, err)
	require.Contains(t, versionCmd.Short, "powerapps-cli")
	require.Contains(t, versionCmd.Long, "powerapps-cli")
}
