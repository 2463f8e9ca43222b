package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/randsrc"
	"github.com/abhisek/mathdrill/internal/wordproblem"
)

// maxDrawsPerProblem bounds one-by-one generation for non-batch topics.
const maxDrawsPerProblem = 20

var worksheetCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "Print a set of unique problems",
	Example: `  mathdrill worksheet --topic arithmetic --op ÷ --range 100 --count 10 --answers
  mathdrill worksheet --topic fraction --tier 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		topic, req, err := problemFlags(cmd, cfg)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			return fmt.Errorf("--count must be positive, got %d", count)
		}
		answers, _ := cmd.Flags().GetBool("answers")

		src := randsrc.New(cfg.Seed)
		gen := problemgen.New(src, wordproblem.NewEngine(nil, src))

		problems := buildWorksheet(gen, topic, req, count)
		if len(problems) < count {
			fmt.Fprintf(os.Stderr, "warning: only %d unique problems fit these constraints\n", len(problems))
		}
		writeWorksheet(cmd.OutOrStdout(), problems, answers)
		return nil
	},
}

func init() {
	addProblemFlags(worksheetCmd)
	worksheetCmd.Flags().Int("count", 10, "Number of problems")
	worksheetCmd.Flags().Bool("answers", false, "Print an answer key")
}

// buildWorksheet returns up to count distinct problems. Arithmetic uses
// the batch generator; other topics are drawn one at a time.
func buildWorksheet(gen *problemgen.Generator, topic problemgen.Topic, req problemgen.Request, count int) []problemgen.Problem {
	req = req.WithDefaults()

	if topic == problemgen.TopicArithmetic {
		batch := gen.Arithmetic().Generate(count, req.Operator, req.Range)
		out := make([]problemgen.Problem, len(batch))
		for i, p := range batch {
			out[i] = problemgen.ArithmeticProblem(p)
		}
		return out
	}

	seen := make(map[string]bool, count)
	var out []problemgen.Problem
	for draws := 0; len(out) < count && draws < count*maxDrawsPerProblem; draws++ {
		p, ok := gen.Generate(topic, req)
		if !ok {
			break
		}
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, *p)
	}
	return out
}

func writeWorksheet(w io.Writer, problems []problemgen.Problem, answers bool) {
	p := message.NewPrinter(language.English)

	for i, prob := range problems {
		p.Fprintf(w, "%3d) %s\n", i+1, worksheetLine(p, prob))
	}

	if !answers || len(problems) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Answers")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for i, prob := range problems {
		p.Fprintf(w, "%3d) %s\n", i+1, answerText(p, prob))
	}
}

// worksheetLine renders arithmetic with grouped digits and a blank.
func worksheetLine(p *message.Printer, prob problemgen.Problem) string {
	if a, ok := prob.Payload.(problemgen.ArithmeticPayload); ok {
		return p.Sprintf("%d %s %d = ______", a.Operand1, a.Operator, a.Operand2)
	}
	return prob.Display
}

func answerText(p *message.Printer, prob problemgen.Problem) string {
	if _, ok := prob.Payload.(problemgen.ArithmeticPayload); ok {
		return p.Sprintf("%d", int(prob.Answer))
	}
	return prob.AnswerText
}
