package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mroshb/streetwars/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	var gangs []models.Gang
	if err := db.Order("respect DESC").Limit(100).Find(&gangs).Error; err != nil {
		log.Fatal("failed to load gangs:", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Leaderboard"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "Name", "Tag", "Level", "Respect", "Bank", "Members", "Territories"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, gang := range gangs {
		var territories int64
		db.Model(&models.Territory{}).Where("controlled_by = ?", gang.ID).Count(&territories)

		row := i + 2
		values := []interface{}{
			i + 1, gang.Name, gang.Tag, gang.Level,
			gang.Respect, gang.BankBalance, gang.MemberCount, territories,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	out := "gang_leaderboard.xlsx"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}
	if err := f.SaveAs(out); err != nil {
		log.Fatal("failed to save workbook:", err)
	}

	fmt.Printf("Exported %d gangs to %s\n", len(gangs), out)
}
