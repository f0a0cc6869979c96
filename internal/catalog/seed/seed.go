// Package seed holds the demo dataset loaded into empty stores so the
// storefront renders something meaningful on first run.
package seed

import (
	"context"
	"errors"

	"github.com/dejobratic/vitrine/internal/catalog/domain"
	"github.com/dejobratic/vitrine/internal/catalog/ports"
	"github.com/shopspring/decimal"
)

// Products returns the demo catalog.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "ASUS VIVOBOOK K X515SK 15",
			Description: "The QuantumBook Pro X is the pinnacle of performance and design. With its next-gen processor and stunning Retina XDR display, it's the ultimate tool for creatives and professionals.",
			Category:    "Laptops",
			Price:       decimal.NewFromInt(2699),
			Discount:    decimal.NewFromFloat(0.20),
			Tag:         domain.TagPromo,
			Images:      []string{"https://picsum.photos/seed/laptop1/800/800", "https://picsum.photos/seed/laptop2/800/800"},
			Featured:    true,
			Specs: map[string]string{
				"CPU":     "Quantum Fusion A1",
				"RAM":     "32GB Unified Memory",
				"Storage": "1TB NVMe SSD",
				"Display": "16-inch Liquid Retina XDR",
			},
			Reviews: []domain.Review{
				{Rating: 5, Text: "Absolutely breathtaking performance!", Author: "Tech Guru"},
				{Rating: 5, Text: "The display is unlike anything I have ever seen.", Author: "Designer D"},
			},
		},
		{
			ID:          "2",
			Name:        "LENOVO IDEAPAD 1 ISL JLT CEL",
			Description: "Experience the future of mobile with the StellarPhone 12. Its advanced camera system, all-day battery life, and blazing fast connectivity set a new standard.",
			Category:    "Laptops",
			Price:       decimal.NewFromInt(3199),
			Discount:    decimal.NewFromFloat(0.13),
			Tag:         domain.TagPromo,
			Images:      []string{"https://picsum.photos/seed/lenovo1/800/800", "https://picsum.photos/seed/lenovo2/800/800"},
			Featured:    true,
			Specs: map[string]string{
				"Processor": "Stellar A18 Bionic",
				"Display":   "6.7-inch Super-Luminance OLED",
				"Battery":   "4500 mAh with HyperCharge",
			},
			Reviews: []domain.Review{
				{Rating: 5, Text: "The camera is a game-changer!", Author: "PhotoPhil"},
				{Rating: 4, Text: "Incredibly fast and responsive.", Author: "GadgetGirl"},
			},
		},
		{
			ID:          "3",
			Name:        "ASUS PC VIVOBOOK G410K",
			Description: "Immerse yourself in pure, high-fidelity audio with SonicSurge. Industry-leading noise cancellation and a 40-hour battery life let you escape into your music.",
			Category:    "Laptops",
			Price:       decimal.NewFromInt(2699),
			Discount:    decimal.NewFromFloat(0.27),
			Tag:         domain.TagPromo,
			Images:      []string{"https://picsum.photos/seed/asuspc1/800/800"},
			Featured:    true,
			Specs: map[string]string{
				"Audio Technology": "Active Noise Cancellation, Spatial Audio",
				"Play Time":        "Up to 40 hours",
			},
			Reviews: []domain.Review{
				{Rating: 5, Text: "Best noise cancelling headphones I have ever owned.", Author: "AudioPhile"},
			},
		},
		{
			ID:          "4",
			Name:        "ASUS PC VIVOBOOK X15",
			Description: "Light as air, powerful as a storm. The AeroBook Air redefines portability without compromising on power, making it the perfect companion for those on the go.",
			Category:    "Laptops",
			Price:       decimal.NewFromInt(5999),
			Discount:    decimal.NewFromFloat(0.14),
			Tag:         domain.TagNouveau,
			Images:      []string{"https://picsum.photos/seed/laptop4/800/800"},
			Featured:    true,
			Specs: map[string]string{
				"CPU":     "Aero M3 Chip",
				"RAM":     "16GB Unified Memory",
				"Storage": "512GB SSD",
			},
			Reviews: []domain.Review{
				{Rating: 5, Text: "So light I forget it's in my bag!", Author: "Frequent Flyer"},
			},
		},
		{
			ID:          "5",
			Name:        "HP INTEL CORE I5 PRO",
			Description: "Your digital canvas awaits. The PixelPerfect with its ultra-responsive stylus offers an unparalleled drawing and note-taking experience.",
			Category:    "Laptops",
			Price:       decimal.NewFromInt(6799),
			Discount:    decimal.NewFromFloat(0.13),
			Tag:         domain.TagPromo,
			Images:      []string{"https://picsum.photos/seed/hp1/800/800"},
			Featured:    true,
			Specs: map[string]string{
				"Processor": "Octa-Core Graphics Pro",
				"Display":   "11-inch TrueTone Display",
			},
			Reviews: []domain.Review{
				{Rating: 5, Text: "The best drawing experience on a tablet.", Author: "Artist"},
			},
		},
		{
			ID:          "6",
			Name:        "MSI MODERN 14 I5 123",
			Description: "Stay connected, stay healthy. The ChronoWatch Series 8 tracks your fitness, monitors your health, and keeps you in touch with what matters most.",
			Category:    "Laptops",
			Price:       decimal.NewFromInt(6499),
			Discount:    decimal.NewFromFloat(0.13),
			Tag:         domain.TagPromo,
			Images:      []string{"https://picsum.photos/seed/msi1/800/800"},
			Featured:    true,
			Specs: map[string]string{
				"Sensors":      "Heart Rate, Blood Oxygen, ECG",
				"Battery Life": "Up to 36 hours",
			},
			Reviews: []domain.Review{
				{Rating: 5, Text: "A life-saver, literally.", Author: "FitnessFanatic"},
			},
		},
	}
}

// LoadProducts inserts the demo catalog, skipping entries that already exist.
func LoadProducts(ctx context.Context, repo ports.ProductRepository) error {
	for _, product := range Products() {
		if err := repo.Create(ctx, product); err != nil {
			if errors.Is(err, ports.ErrAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}
