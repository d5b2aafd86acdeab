package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Restaurant:
		o.printRestaurant(v)
	case RestaurantList:
		o.printRestaurantList(v)
	case CreatedResult:
		o.printCreatedResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

// Coord response type
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address response type
type Address struct {
	Street   string `json:"street,omitempty"`
	Building string `json:"building,omitempty"`
	Zipcode  string `json:"zipcode,omitempty"`
	Coord    *Coord `json:"coord,omitempty"`
}

// Grade response type
type Grade struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// Restaurant response type
type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Borough      string    `json:"borough,omitempty"`
	Cuisine      string    `json:"cuisine,omitempty"`
	Address      *Address  `json:"address,omitempty"`
	HasPhoto     bool      `json:"has_photo"`
	Owner        string    `json:"owner"`
	Grades       []Grade   `json:"grades"`
	AverageScore *float64  `json:"average_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RestaurantSummary response type
type RestaurantSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Borough string   `json:"borough,omitempty"`
	Cuisine string   `json:"cuisine,omitempty"`
	Address *Address `json:"address,omitempty"`
	Owner   string   `json:"owner"`
}

// RestaurantList response type
type RestaurantList struct {
	Restaurants []RestaurantSummary `json:"restaurants"`
}

// CreatedResult response type
type CreatedResult struct {
	ID string `json:"id"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(r AuthResult) {
	fmt.Printf("Signed in as %s\n", r.Username)
	if r.SessionToken != "" {
		fmt.Println("Session token saved")
	}
}

func (o *Output) printRestaurant(r Restaurant) {
	name := r.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("%s  [%s]\n", name, r.ID)
	if r.Borough != "" {
		fmt.Printf("  Borough: %s\n", r.Borough)
	}
	if r.Cuisine != "" {
		fmt.Printf("  Cuisine: %s\n", r.Cuisine)
	}
	if r.Address != nil {
		parts := []string{}
		if r.Address.Building != "" {
			parts = append(parts, r.Address.Building)
		}
		if r.Address.Street != "" {
			parts = append(parts, r.Address.Street)
		}
		if r.Address.Zipcode != "" {
			parts = append(parts, r.Address.Zipcode)
		}
		if len(parts) > 0 {
			fmt.Printf("  Address: %s\n", strings.Join(parts, ", "))
		}
		if r.Address.Coord != nil {
			fmt.Printf("  Coordinates: %g, %g\n", r.Address.Coord.Lat, r.Address.Coord.Lng)
		}
	}
	fmt.Printf("  Owner: %s\n", r.Owner)
	if r.HasPhoto {
		fmt.Println("  Photo: yes")
	}
	if r.AverageScore != nil {
		fmt.Printf("  Average score: %.1f (%d ratings)\n", *r.AverageScore, len(r.Grades))
		for _, g := range r.Grades {
			fmt.Printf("    %s: %d\n", g.User, g.Score)
		}
	} else {
		fmt.Println("  No ratings yet")
	}
}

func (o *Output) printRestaurantList(l RestaurantList) {
	if len(l.Restaurants) == 0 {
		fmt.Println("No restaurants found")
		return
	}
	for _, r := range l.Restaurants {
		name := r.Name
		if name == "" {
			name = "(unnamed)"
		}
		line := fmt.Sprintf("%s  [%s]", name, r.ID)
		if r.Borough != "" {
			line += "  " + r.Borough
		}
		if r.Cuisine != "" {
			line += "  " + r.Cuisine
		}
		fmt.Println(line)
	}
}

func (o *Output) printCreatedResult(r CreatedResult) {
	fmt.Printf("Created restaurant %s\n", r.ID)
}

func (o *Output) printHealthResult(r HealthResult) {
	fmt.Printf("Status: %s\n", r.Status)
}
