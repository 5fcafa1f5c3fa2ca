package main

import (
	"github.com/spf13/cobra"

	"github.com/DinDin03/FriendAvailability/internal/util"
	"github.com/DinDin03/FriendAvailability/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage directory users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user to the directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		user, err := storeInstance.CreateUser(ctx, &store.User{
			UID:   util.GenUUID(),
			Name:  name,
			Email: email,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, user)
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory users",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, storeInstance, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		users, err := storeInstance.ListUsers(ctx, &store.FindUser{})
		if err != nil {
			return err
		}
		return printJSON(cmd, users)
	},
}

func init() {
	userAddCmd.Flags().String("name", "", "display name")
	userAddCmd.Flags().String("email", "", "email address")
	_ = userAddCmd.MarkFlagRequired("name")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
}
