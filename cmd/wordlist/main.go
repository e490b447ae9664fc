package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"boundle/internal/config"
	"boundle/internal/puzzle"
)

func main() {
	// Define subcommands
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	scheduleCmd := flag.NewFlagSet("schedule", flag.ExitOnError)

	// Schedule flags
	scheduleFrom := scheduleCmd.String("from", "", "Start date YYYY-MM-DD (default: today)")
	scheduleDays := scheduleCmd.Int("days", 14, "Number of days to print")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	epoch, err := time.ParseInLocation("2006-01-02", cfg.PuzzleEpoch, time.UTC)
	if err != nil {
		log.Fatalf("Invalid puzzle epoch %q: %v", cfg.PuzzleEpoch, err)
	}

	schedule, err := puzzle.LoadSchedule(cfg.WordListPath, epoch)
	if err != nil {
		log.Fatalf("Word list %s failed validation: %v", cfg.WordListPath, err)
	}

	switch os.Args[1] {
	case "check":
		checkCmd.Parse(os.Args[2:])
		handleCheck(cfg.WordListPath, schedule)

	case "schedule":
		scheduleCmd.Parse(os.Args[2:])
		handleSchedule(schedule, *scheduleFrom, *scheduleDays)

	default:
		printUsage()
		os.Exit(1)
	}
}

// handleCheck reports the validated word list. LoadSchedule already rejects
// empty lists and malformed words, so reaching here means the list is usable.
func handleCheck(path string, schedule *puzzle.Schedule) {
	fmt.Printf("Word list %s is valid\n", path)
	fmt.Printf("  scheduled words: %d\n", schedule.Len())
	fmt.Printf("  cycle length:    %d days\n", schedule.Len())
}

// handleSchedule prints the date-to-word assignment for a window of days
func handleSchedule(schedule *puzzle.Schedule, from string, days int) {
	start := time.Now().UTC()
	if from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			log.Fatalf("Invalid -from date %q: %v", from, err)
		}
		start = parsed
	}
	if days < 1 {
		log.Fatalf("-days must be at least 1")
	}

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		fmt.Printf("%s  day %-6d %s\n", day.Format("2006-01-02"), schedule.DayIndex(day), schedule.WordForDay(day))
	}
}

func printUsage() {
	fmt.Println("Usage: wordlist <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check       Validate the configured word list")
	fmt.Println("  schedule    Print the day-to-word schedule")
	fmt.Println()
	fmt.Println("Flags for schedule:")
	fmt.Println("  -from string   Start date YYYY-MM-DD (default: today)")
	fmt.Println("  -days int      Number of days to print (default: 14)")
}
