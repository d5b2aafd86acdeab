package cli

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newRestaurantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurant",
		Short: "Restaurant directory commands",
	}

	cmd.AddCommand(newRestaurantListCmd())
	cmd.AddCommand(newRestaurantShowCmd())
	cmd.AddCommand(newRestaurantCreateCmd())
	cmd.AddCommand(newRestaurantUpdateCmd())
	cmd.AddCommand(newRestaurantDeleteCmd())
	cmd.AddCommand(newRestaurantRateCmd())

	return cmd
}

func newRestaurantListCmd() *cobra.Command {
	var name, borough, cuisine, zipcode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List restaurants, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if name != "" {
				q.Set("name", name)
			}
			if borough != "" {
				q.Set("borough", borough)
			}
			if cuisine != "" {
				q.Set("cuisine", cuisine)
			}
			if zipcode != "" {
				q.Set("zipcode", zipcode)
			}

			path := "/api/v1/restaurants"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var result RestaurantList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by name")
	cmd.Flags().StringVar(&borough, "borough", "", "Filter by borough")
	cmd.Flags().StringVar(&cuisine, "cuisine", "", "Filter by cuisine")
	cmd.Flags().StringVar(&zipcode, "zipcode", "", "Filter by zipcode")

	return cmd
}

func newRestaurantShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a restaurant with its ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Restaurant
			if err := client.Get("/api/v1/restaurants/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// restaurantFlags holds the shared create/update field flags
type restaurantFlags struct {
	name, borough, cuisine    string
	street, building, zipcode string
	lat, lng                  string
	photoPath                 string
}

func (f *restaurantFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Restaurant name")
	cmd.Flags().StringVar(&f.borough, "borough", "", "Borough")
	cmd.Flags().StringVar(&f.cuisine, "cuisine", "", "Cuisine")
	cmd.Flags().StringVar(&f.street, "street", "", "Street")
	cmd.Flags().StringVar(&f.building, "building", "", "Building")
	cmd.Flags().StringVar(&f.zipcode, "zipcode", "", "Zipcode")
	cmd.Flags().StringVar(&f.lat, "lat", "", "Latitude")
	cmd.Flags().StringVar(&f.lng, "lng", "", "Longitude")
	cmd.Flags().StringVar(&f.photoPath, "photo", "", "Path to a photo file")
}

// body builds the JSON request body from the flags
func (f *restaurantFlags) body() (map[string]any, error) {
	body := map[string]any{}
	if f.name != "" {
		body["name"] = f.name
	}
	if f.borough != "" {
		body["borough"] = f.borough
	}
	if f.cuisine != "" {
		body["cuisine"] = f.cuisine
	}
	if f.street != "" {
		body["street"] = f.street
	}
	if f.building != "" {
		body["building"] = f.building
	}
	if f.zipcode != "" {
		body["zipcode"] = f.zipcode
	}
	if f.lat != "" {
		lat, err := strconv.ParseFloat(f.lat, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --lat: %s", f.lat)
		}
		body["lat"] = lat
	}
	if f.lng != "" {
		lng, err := strconv.ParseFloat(f.lng, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --lng: %s", f.lng)
		}
		body["lng"] = lng
	}
	if f.photoPath != "" {
		photo, err := os.ReadFile(f.photoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		body["photo"] = photo
		body["photo_mimetype"] = http.DetectContentType(photo)
	}
	return body, nil
}

func newRestaurantCreateCmd() *cobra.Command {
	flags := &restaurantFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := flags.body()
			if err != nil {
				return err
			}

			var result CreatedResult
			if err := client.Post("/api/v1/restaurants", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newRestaurantUpdateCmd() *cobra.Command {
	flags := &restaurantFlags{}
	var deletePhoto bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a restaurant's fields (owner only)",
		Long: `Replace a restaurant's optional fields. Fields not given are removed
from the record, except the photo, which is kept unless --photo or
--delete-photo is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := flags.body()
			if err != nil {
				return err
			}
			if deletePhoto {
				body["delete_photo"] = true
			}

			var result Restaurant
			if err := client.Put("/api/v1/restaurants/"+args[0], body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&deletePhoto, "delete-photo", false, "Remove the stored photo")
	return cmd
}

func newRestaurantDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a restaurant (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/restaurants/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Restaurant deleted")
			return nil
		},
	}
}

func newRestaurantRateCmd() *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "rate <id>",
		Short: "Rate a restaurant (1-5, once per user)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"score": score}

			var result Restaurant
			if err := client.Post("/api/v1/restaurants/"+args[0]+"/grades", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Score from 1 to 5 (required)")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}
