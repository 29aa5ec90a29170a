package cli

import (
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	addFirstName string
	addLastName  string
	addPhone     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts without going through the HTTP API",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Prompt for password
		fmt.Print("Enter password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Print("Confirm password: ")
		confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if string(password) != string(confirmPassword) {
			return fmt.Errorf("passwords do not match")
		}

		if len(password) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		// Register registers the user and stamps their first login; the
		// issued token is discarded here.
		_, err = services.AuthService.Register(
			cmd.Context(),
			username,
			string(password),
			addFirstName,
			addLastName,
			addPhone,
		)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("User '%s' created successfully\n", username)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserRepo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tFIRST NAME\tLAST NAME\tPHONE")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				user.Username,
				user.FirstName,
				user.LastName,
				user.Phone,
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)

	usersAddCmd.Flags().StringVar(&addFirstName, "first-name", "", "user's first name")
	usersAddCmd.Flags().StringVar(&addLastName, "last-name", "", "user's last name")
	usersAddCmd.Flags().StringVar(&addPhone, "phone", "", "user's phone number")
}
