package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleCoupons creates the gzipped coupon files the validator loads
// at startup. Lines are "CODE,percent"; a bare code gets the default
// discount. The store file wins when a code appears in both.
func main() {
	dataDir := "data/coupons"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	coupons := map[string][]string{
		"store.gz": {
			"PLANTS10,10",
			"POTS15,15",
			"WELCOME5,5",
			"GREENTHUMB", // default discount
		},
		"seasonal.gz": {
			"MONSOON20,20",
			"DIWALI25,25",
			"PLANTS10,30", // shadowed by the store file
		},
	}

	for filename, codes := range coupons {
		filePath := filepath.Join(dataDir, filename)

		if err := createCouponFile(filePath, codes); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d codes\n", filePath, len(codes))
	}

	fmt.Println("\nSample coupon files created successfully!")
}

func createCouponFile(filePath string, coupons []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, coupon := range coupons {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", coupon); err != nil {
			return fmt.Errorf("failed to write coupon: %w", err)
		}
	}

	return nil
}
