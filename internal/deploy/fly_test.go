package deploy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
	"github.com/raise-the-bones/cli/internal/exec/exectest"
)

func TestFly_ListApps(t *testing.T) {
	runner := exectest.New().On("fly apps list --json", exectest.OK(`[
		{"ID": "demo-app", "Name": "demo-app", "Status": "deployed"},
		{"ID": "other", "Name": "other", "Status": "suspended"}
	]`))
	f := NewFly(runner)

	apps, err := f.ListApps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []App{
		{Name: "demo-app", Status: "deployed"},
		{Name: "other", Status: "suspended"},
	}, apps)

	exists, err := f.AppExists(context.Background(), "other")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.AppExists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFly_UnrecognizedListing(t *testing.T) {
	for name, stdout := range map[string]string{
		"empty":  "",
		"text":   "NAME     OWNER    STATUS\ndemo-app personal deployed\n",
		"object": `{"Name": "demo-app"}`,
	} {
		t.Run(name, func(t *testing.T) {
			runner := exectest.New().On("fly secrets list", exectest.OK(stdout))

			_, err := NewFly(runner).HasSecret(context.Background(), "demo-app", DatabaseURLKey)
			assert.True(t, errors.Is(err, oerrors.ErrUnrecognizedFormat))
		})
	}
}

func TestFly_NullListing(t *testing.T) {
	runner := exectest.New().On("fly secrets list", exectest.OK("null\n"))

	set, err := NewFly(runner).HasSecret(context.Background(), "demo-app", DatabaseURLKey)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestFly_Options(t *testing.T) {
	runner := exectest.New()
	f := NewFly(runner, WithCLI("flyctl"), WithDir("/proj"), WithCallTimeout(10*time.Second))

	require.NoError(t, f.CreateApp(context.Background(), "demo-app"))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "flyctl apps create demo-app", calls[0].String())
	assert.Equal(t, "/proj", calls[0].Dir)
	assert.Equal(t, 10*time.Second, calls[0].Timeout)
	assert.Equal(t, "1", calls[0].Env["FLY_NO_UPDATE_CHECK"])
}

func TestFly_VersionAndWhoami(t *testing.T) {
	runner := exectest.New().
		On("fly version", exectest.OK("fly v0.3.40 linux/amd64\n")).
		On("fly auth whoami", exectest.OK("dev@example.com\n"))
	f := NewFly(runner)

	v, err := f.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fly v0.3.40 linux/amd64", v)

	who, err := f.Whoami(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", who)
}
