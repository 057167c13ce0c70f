package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
)

// LegacySource reads a definition from plain text files.
//
// Every variable file starts with the name of the variable, followed by
// one membership function per line:
//
//	Angle
//	NL 0 31 31 63
//	NM 31 63 63 95
//
// The rules file holds one rule per line, the antecedents in input order
// followed by the consequents in output order, optionally separated by "->".
// Empty lines and lines starting with '#' are ignored.
type LegacySource struct {
	Inputs  []string
	Outputs []string
	Rules   string
}

func (s LegacySource) Definition() (fuzzy.Definition, error) {
	var definition fuzzy.Definition

	for _, path := range s.Inputs {
		variable, err := readVariableFile(path)
		if err != nil {
			return fuzzy.Definition{}, err
		}
		definition.Inputs = append(definition.Inputs, variable)
	}
	for _, path := range s.Outputs {
		variable, err := readVariableFile(path)
		if err != nil {
			return fuzzy.Definition{}, err
		}
		definition.Outputs = append(definition.Outputs, variable)
	}

	rules, err := readRulesFile(s.Rules, len(definition.Inputs), len(definition.Outputs))
	if err != nil {
		return fuzzy.Definition{}, err
	}
	definition.Rules = rules

	return definition, nil
}

func readVariableFile(path string) (fuzzy.VariableDefinition, error) {
	file, err := os.Open(path)
	if err != nil {
		return fuzzy.VariableDefinition{}, fmt.Errorf("unable to open data file: %w", err)
	}
	defer file.Close()
	return parseVariable(path, file)
}

func parseVariable(name string, reader io.Reader) (fuzzy.VariableDefinition, error) {
	var variable fuzzy.VariableDefinition

	err := scanLines(reader, func(lineNumber int, fields []string) error {
		if len(variable.Name) <= 0 {
			if len(fields) != 1 {
				return fmt.Errorf("%s:%d: expected variable name, got '%s'", name, lineNumber, strings.Join(fields, " "))
			}
			variable.Name = fields[0]
			return nil
		}

		if len(fields) != 5 {
			return fmt.Errorf("%s:%d: expected 'name a b c d', got '%s'", name, lineNumber, strings.Join(fields, " "))
		}
		term := fuzzy.TermDefinition{Name: fields[0]}
		for i, field := range fields[1:] {
			point, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("%s:%d: point %d of %s is not an integer: '%s'", name, lineNumber, i+1, term.Name, field)
			}
			term.Points[i] = point
		}
		variable.Terms = append(variable.Terms, term)
		return nil
	})
	if err != nil {
		return fuzzy.VariableDefinition{}, err
	}
	if len(variable.Name) <= 0 {
		return fuzzy.VariableDefinition{}, fmt.Errorf("%s: file is empty", name)
	}
	return variable, nil
}

func readRulesFile(path string, inputs int, outputs int) ([]fuzzy.RuleDefinition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open data file: %w", err)
	}
	defer file.Close()
	return parseRules(path, file, inputs, outputs)
}

func parseRules(name string, reader io.Reader, inputs int, outputs int) ([]fuzzy.RuleDefinition, error) {
	var rules []fuzzy.RuleDefinition

	err := scanLines(reader, func(lineNumber int, fields []string) error {
		var terms []string
		for _, field := range fields {
			if field != configuration.RuleArrow {
				terms = append(terms, field)
			}
		}
		if len(terms) != inputs+outputs {
			return fmt.Errorf("%s:%d: expected %d antecedents and %d consequents, got '%s'", name, lineNumber, inputs, outputs, strings.Join(fields, " "))
		}
		rules = append(rules, fuzzy.RuleDefinition{
			Antecedents: terms[:inputs],
			Consequents: terms[inputs:],
		})
		return nil
	})
	return rules, err
}

func scanLines(reader io.Reader, handle func(lineNumber int, fields []string) error) error {
	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) <= 0 || strings.HasPrefix(line, "#") {
			continue
		}
		if err := handle(lineNumber, strings.Fields(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
