package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abhisheksh99/Food-Delivery-App-v2/config"
	"github.com/abhisheksh99/Food-Delivery-App-v2/models"
	"github.com/abhisheksh99/Food-Delivery-App-v2/repository"
)

type adminSetter interface {
	SetAdmin(ctx context.Context, email string, admin bool, now time.Time) (*models.User, error)
}

var grantAdminFlags struct {
	email  string
	revoke bool
}

var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin",
	Short: "Let a signed up user manage a restaurant",
	Long: "grant-admin sets the admin flag on the user with the given email, which\n" +
		"unlocks the restaurant, menu and restaurant order routes. --revoke clears it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client, err := config.DBinstance(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		return runGrantAdmin(ctx, usersIn(client.Database(cfg.MongoDatabase)), grantAdminFlags.email, !grantAdminFlags.revoke, cmd.OutOrStdout())
	},
}

func init() {
	grantAdminCmd.Flags().StringVar(&grantAdminFlags.email, "email", "", "email of the user")
	grantAdminCmd.Flags().BoolVar(&grantAdminFlags.revoke, "revoke", false, "remove admin rights instead")
	grantAdminCmd.MarkFlagRequired("email")
}

func usersIn(db *mongo.Database) adminSetter {
	return repository.NewUserRepository(db)
}

func runGrantAdmin(ctx context.Context, users adminSetter, email string, admin bool, out io.Writer) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	user, err := users.SetAdmin(ctx, email, admin, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", email, err)
	}
	verb := "granted to"
	if !admin {
		verb = "revoked from"
	}
	fmt.Fprintf(out, "admin %s %s (%s)\n", verb, user.Email, user.ID.Hex())
	return nil
}
