package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
		Long:  "Create, list, unlock, and activate the administrative accounts that can manage portfolio content.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminUnlockCmd())
	cmd.AddCommand(newAdminSetActiveCmd("activate", true))
	cmd.AddCommand(newAdminSetActiveCmd("deactivate", false))

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new admin account",
		Example: `  folio admin create --email admin@example.com --password secret
  folio admin create --email admin@example.com  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(email, password, name)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Admin display name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runAdminCreate(email, password, name string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %q", email)
	}

	if password == "" {
		var err error
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := st.CreateAdmin(context.Background(), admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("Created admin account %q\n", email)
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	fmt.Println()

	if string(pwBytes) != string(confirmBytes) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pwBytes), nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(jsonOutput bool) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	admins, err := st.ListAdmins(context.Background())
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	if jsonOutput {
		rows := make([]model.PublicAdmin, 0, len(admins))
		for _, a := range admins {
			rows = append(rows, a.Public())
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts configured. Use 'folio admin create' to create one.")
		return nil
	}

	fmt.Printf("%-30s %-24s %-8s %-8s\n", "EMAIL", "NAME", "ACTIVE", "LOCKED")
	fmt.Printf("%-30s %-24s %-8s %-8s\n", "-----", "----", "------", "------")
	for _, a := range admins {
		active := "yes"
		if !a.IsActive {
			active = "no"
		}
		locked := "no"
		if a.LockedUntil != nil {
			locked = "until " + a.LockedUntil.Format("15:04:05")
		}
		fmt.Printf("%-30s %-24s %-8s %-8s\n", a.Email, a.Name, active, locked)
	}

	return nil
}

// ---------- admin unlock ----------

func newAdminUnlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlock <email>",
		Short: "Clear an account's lockout and failure counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminUnlock(args[0])
		},
	}
	return cmd
}

func runAdminUnlock(email string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	admin, err := st.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no admin account with email %q", email)
		}
		return fmt.Errorf("look up admin: %w", err)
	}

	if err := st.ClearLock(ctx, admin.ID); err != nil {
		return fmt.Errorf("clear lock: %w", err)
	}

	fmt.Printf("Unlocked admin account %q\n", email)
	return nil
}

// ---------- admin activate / deactivate ----------

func newAdminSetActiveCmd(use string, active bool) *cobra.Command {
	short := "Reactivate an admin account"
	if !active {
		short = "Deactivate an admin account without deleting it"
	}
	cmd := &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminSetActive(args[0], active)
		},
	}
	return cmd
}

func runAdminSetActive(email string, active bool) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	admin, err := st.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no admin account with email %q", email)
		}
		return fmt.Errorf("look up admin: %w", err)
	}

	if err := st.SetAdminActive(ctx, admin.ID, active); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}

	state := "Activated"
	if !active {
		state = "Deactivated"
	}
	fmt.Printf("%s admin account %q\n", state, email)
	return nil
}
