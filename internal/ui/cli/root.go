// Package cli is the chargemap command tree: auth commands, station CRUD,
// dashboard and map rendering, all driving the state stores.
package cli

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"chargemap/internal/ui/client"
	"chargemap/internal/ui/mapview"
	"chargemap/internal/ui/store"
)

// ErrLoginRequired gates mutating commands when no session is stored.
var ErrLoginRequired = errors.New("not logged in: run `chargemap login` first")

const defaultAPIURL = "http://localhost:8080"

// Env wires the command tree to its stores and views.
type Env struct {
	Client   *client.Client
	Auth     *store.AuthStore
	Stations *store.StationStore
	Map      *mapview.MapView
}

// NewRootCommand builds the chargemap CLI.
func NewRootCommand() *cobra.Command {
	_ = godotenv.Load()

	var apiURL, sessionFile string

	root := &cobra.Command{
		Use:           "chargemap",
		Short:         "Manage EV charging stations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", envOr("CHARGEMAP_API_URL", defaultAPIURL), "chargemap API base URL")
	root.PersistentFlags().StringVar(&sessionFile, "session-file", os.Getenv("CHARGEMAP_SESSION_FILE"), "session file path")

	env := &Env{}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		env.Client = client.New(apiURL, nil)
		session := store.NewSessionFile(sessionFile)
		env.Auth = store.NewAuthStore(env.Client, session)
		env.Stations = store.NewStationStore(env.Client)
		env.Map = mapview.New()
		// Rehydrate the stored session; mutating commands check the result.
		env.Auth.CheckAuth()
	}

	root.AddCommand(
		newLoginCommand(env),
		newRegisterCommand(env),
		newLogoutCommand(env),
		newStationsCommand(env),
		newDashboardCommand(env),
		newMapCommand(env),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// requireSession is the auth gate for mutating commands.
func requireSession(env *Env) error {
	if !env.Auth.IsAuthenticated() {
		return ErrLoginRequired
	}
	return nil
}
