package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"bikeshare/domain/entities/criteria"
	"bikeshare/utils"
)

const (
	wrongInputMessage = "Wrong input, please try again..."
	yesStr            = "yes"
)

// ErrNoInput the input was closed before a valid answer was given
var ErrNoInput = errors.New("no more input")

// Prompter asks questions on out and reads the answers, one per line, from in
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// City asks for a city until the answer is one of cities
func (p *Prompter) City(cities []string) (string, error) {
	question := fmt.Sprintf("Enter city name (%s): ", joinOptions(cities))
	for {
		answer, err := p.ask(question)
		if err != nil {
			return "", err
		}
		if utils.ContainsString(answer, cities) {
			return answer, nil
		}
		p.println(wrongInputMessage)
	}
}

// Month asks for a month until the answer is all or january thru june
func (p *Prompter) Month() (criteria.Month, error) {
	for {
		answer, err := p.ask(rangeQuestion("Enter month", criteria.MonthOptions()))
		if err != nil {
			return criteria.AllMonths, err
		}
		month, err := criteria.ParseMonth(answer)
		if err == nil {
			return month, nil
		}
		p.println(wrongInputMessage)
	}
}

// Weekday asks for a weekday until the answer is all or monday thru sunday
func (p *Prompter) Weekday() (criteria.Weekday, error) {
	for {
		answer, err := p.ask(rangeQuestion("Enter the day of week", criteria.WeekdayOptions()))
		if err != nil {
			return criteria.AllDays, err
		}
		weekday, err := criteria.ParseWeekday(answer)
		if err == nil {
			return weekday, nil
		}
		p.println(wrongInputMessage)
	}
}

// Filters asks for the city, month and weekday of a query
func (p *Prompter) Filters(cities []string) (string, criteria.Criteria, error) {
	city, err := p.City(cities)
	if err != nil {
		return "", criteria.All(), err
	}
	month, err := p.Month()
	if err != nil {
		return "", criteria.All(), err
	}
	weekday, err := p.Weekday()
	if err != nil {
		return "", criteria.All(), err
	}
	return city, criteria.NewCriteria(month, weekday), nil
}

// Confirm asks a yes or no question. Only yes is a confirmation.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		return false, err
	}
	return answer == yesStr, nil
}

// ask prints the question and returns the next line of input, normalized
func (p *Prompter) ask(question string) (string, error) {
	_, _ = fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", ErrNoInput
	}
	return utils.NormalizeInput(p.scanner.Text()), nil
}

func (p *Prompter) println(message string) {
	_, _ = fmt.Fprintln(p.out, message)
}

// rangeQuestion returns "<prefix> (all or first thru last): " for options that start with the "all" selector
func rangeQuestion(prefix string, options []string) string {
	return fmt.Sprintf("%s (%s or %s thru %s): ", prefix, options[0], options[1], options[len(options)-1])
}

// joinOptions returns "a, b or c"
func joinOptions(options []string) string {
	if len(options) < 2 {
		return strings.Join(options, "")
	}
	return strings.Join(options[:len(options)-1], ", ") + " or " + options[len(options)-1]
}
