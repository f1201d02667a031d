package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/skillvet/skillvet/internal/interview"
	"github.com/skillvet/skillvet/internal/question"
	"github.com/skillvet/skillvet/internal/topic"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interview session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func init() {
	runCmd.Flags().String("candidate", "", "Candidate name (prompted when omitted)")
	runCmd.Flags().String("level", "", "Declared level: beginner, intermediate, or advanced (prompted when omitted)")
}

func runInterview(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := cmd.Context()

	candidate, err := askCandidate(cmd)
	if err != nil {
		return err
	}
	level, err := askLevel(cmd)
	if err != nil {
		return err
	}

	sess, err := e.engine.Start(ctx, candidate, level)
	if err != nil {
		return err
	}

	fmt.Printf("\nSession %s started for %s (%s level).\n", sess.ID, candidate, level)
	fmt.Println("Answer each question as you would in a spoken interview. Enter an empty answer to abort.")

	q := sess.Pending
	for {
		printQuestion(q)

		answer, err := askAnswer()
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" {
			res, err := e.engine.Abort(ctx, sess.ID)
			if err != nil {
				return err
			}
			fmt.Println("\nInterview aborted.")
			printResult(res)
			return nil
		}

		turn, err := e.engine.Submit(ctx, sess.ID, answer)
		if err != nil {
			return err
		}

		fmt.Printf("\n  Score: %.1f/10  (%s)\n", turn.Exchange.Score, turn.Exchange.Source)
		if turn.Exchange.Explanation != "" {
			fmt.Printf("  %s\n", turn.Exchange.Explanation)
		}

		if turn.Done {
			printResult(turn.Result)
			return nil
		}
		q = turn.NextQuestion
	}
}

func askCandidate(cmd *cobra.Command) (string, error) {
	if name, _ := cmd.Flags().GetString("candidate"); name != "" {
		return name, nil
	}
	prompt := promptui.Prompt{
		Label: "Candidate name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name must not be empty")
			}
			return nil
		},
	}
	return prompt.Run()
}

func askLevel(cmd *cobra.Command) (topic.Level, error) {
	if lvl, _ := cmd.Flags().GetString("level"); lvl != "" {
		return topic.ParseLevel(lvl)
	}
	sel := promptui.Select{
		Label: "Declared skill level",
		Items: []string{
			string(topic.LevelBeginner),
			string(topic.LevelIntermediate),
			string(topic.LevelAdvanced),
		},
	}
	_, chosen, err := sel.Run()
	if err != nil {
		return "", err
	}
	return topic.ParseLevel(chosen)
}

func askAnswer() (string, error) {
	prompt := promptui.Prompt{Label: "Your answer"}
	answer, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) {
		return "", nil
	}
	return answer, err
}

func printQuestion(q *question.Question) {
	fmt.Printf("\n[%s · %s", topic.DisplayName(q.Topic), q.Tier)
	if q.Comprehensive {
		fmt.Printf(" · comprehensive")
	}
	fmt.Printf("]\n%s\n", q.Text)
}

func printResult(res *interview.Result) {
	fmt.Printf("\n=== Interview Report: %s ===\n", res.Candidate)
	fmt.Printf("Session:        %s\n", res.SessionID)
	fmt.Printf("Questions:      %d\n", res.QuestionCount)
	fmt.Printf("Ended:          %s\n", res.Reason)
	fmt.Printf("Final score:    %.1f/10\n", res.FinalScore)
	fmt.Printf("Recommendation: %s\n", res.Recommendation)
	coverage := "not met"
	if res.CoverageSatisfied {
		coverage = "met"
	}
	fmt.Printf("Coverage:       %s\n", coverage)

	if len(res.PerTopic) > 0 {
		fmt.Println("\nPer-topic scores:")
		for _, ts := range res.PerTopic {
			fmt.Printf("  %-20s %.1f  (%d questions)\n", topic.DisplayName(ts.Topic), ts.Mean, ts.Exchanges)
		}
	}
	if len(res.Strengths) > 0 {
		fmt.Println("\nStrengths:")
		for _, s := range res.Strengths {
			fmt.Printf("  - %s\n", s)
		}
	}
	if len(res.Improvements) > 0 {
		fmt.Println("\nAreas to improve:")
		for _, s := range res.Improvements {
			fmt.Printf("  - %s\n", s)
		}
	}
}
