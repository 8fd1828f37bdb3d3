package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/microlearn/internal/lessons"
	"github.com/abhisek/microlearn/internal/quiz"
	"github.com/abhisek/microlearn/internal/ui/markup"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a lesson without the interactive UI",
	Example: `  microlearn generate "Photosynthesis" --audience "5th Grade"
  microlearn generate -t "Stoicism" --json > stoicism.json
  microlearn generate -t "Black holes" --quiz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" {
			topic = strings.Join(args, " ")
		}
		audienceFlag, _ := cmd.Flags().GetString("audience")
		asJSON, _ := cmd.Flags().GetBool("json")
		runQuiz, _ := cmd.Flags().GetBool("quiz")

		audience, err := lessons.ParseAudience(audienceFlag)
		if err != nil {
			return err
		}
		if strings.TrimSpace(topic) == "" {
			return lessons.ErrEmptyTopic
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if !asJSON {
			cmd.PrintErrf("Designing a %s lesson on %q...\n", audience.Label(), topic)
		}
		lesson, err := d.service.Generate(cmd.Context(), topic, audience)
		if err != nil {
			// The model's verdict on the topic is shown as-is; every
			// other failure gets the generic message.
			return errors.New(lessons.UserMessage(err))
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(lesson)
		}

		printLesson(out, lesson)
		if runQuiz {
			return runLineQuiz(cmd.InOrStdin(), out, lesson.Quiz)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Topic to teach (or pass it as arguments)")
	generateCmd.Flags().StringP("audience", "a", string(lessons.DefaultAudience), "Audience level (see `microlearn audiences`)")
	generateCmd.Flags().Bool("json", false, "Print the lesson as JSON")
	generateCmd.Flags().Bool("quiz", false, "Take the quiz after the lesson")
}

func printLesson(w io.Writer, l *lessons.Lesson) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "%s\n", markup.Sanitize(l.Title))
	fmt.Fprintf(w, "Audience:  %s\n", markup.Sanitize(l.TargetAudience))
	fmt.Fprintf(w, "Objective: %s\n", markup.Sanitize(l.Objective))
	fmt.Fprintln(w, sep)

	fmt.Fprintln(w, "Key Concepts")
	for _, k := range l.KeyConcepts {
		fmt.Fprintf(w, "  • %s\n", markup.Sanitize(k))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, markup.Plain(l.Content))

	if len(l.ResearchPapers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, "Latest Research & Developments")
		for _, p := range l.ResearchPapers {
			fmt.Fprintf(w, "\n  [%s] %s\n", markup.Sanitize(p.DisplayDate()), markup.Sanitize(p.Title))
			fmt.Fprintf(w, "  %s\n", markup.Sanitize(p.Summary))
			fmt.Fprintf(w, "  Source: %s\n", markup.Sanitize(p.Source))
			if p.URL != "" {
				fmt.Fprintf(w, "  %s\n", markup.Sanitize(p.URL))
			}
		}
	}
	fmt.Fprintln(w)
}

// runLineQuiz plays the quiz over plain reader/writer streams: one number
// per answer, then a retry prompt on the results.
func runLineQuiz(r io.Reader, w io.Writer, questions []lessons.QuizQuestion) error {
	s, err := quiz.New(questions)
	if err != nil {
		return err
	}
	in := bufio.NewScanner(r)

	for {
		for !s.IsComplete() {
			q := s.Current()
			fmt.Fprintf(w, "\nQuestion %d of %d\n%s\n", s.Index()+1, s.Total(), markup.Sanitize(q.Question))
			for i, opt := range q.Options {
				fmt.Fprintf(w, "  %d) %s\n", i+1, markup.Sanitize(opt))
			}

			for {
				fmt.Fprint(w, "Answer [1-4]: ")
				if !in.Scan() {
					return readErr(in)
				}
				n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
				if err == nil && s.Select(n-1) == nil {
					break
				}
				fmt.Fprintln(w, "Please enter a number from 1 to 4.")
			}

			correct, err := s.Submit()
			if err != nil {
				return err
			}
			if correct {
				fmt.Fprintln(w, "Correct!")
			} else {
				fmt.Fprintf(w, "Incorrect. The answer is %d) %s\n", q.CorrectIndex+1, markup.Sanitize(q.Options[q.CorrectIndex]))
			}
			fmt.Fprintln(w, markup.Sanitize(q.Explanation))
			if err := s.Advance(); err != nil {
				return err
			}
		}

		fmt.Fprintf(w, "\nQuiz Complete! %d%%  (%d out of %d Correct)\n", s.FinalPercent(), s.Score(), s.Total())
		fmt.Fprint(w, "Retry? [y/N]: ")
		if !in.Scan() {
			fmt.Fprintln(w)
			return readErr(in)
		}
		if a := strings.ToLower(strings.TrimSpace(in.Text())); a != "y" && a != "yes" {
			return nil
		}
		if err := s.Retry(); err != nil {
			return err
		}
	}
}

// readErr maps end of input to a clean exit.
func readErr(s *bufio.Scanner) error {
	if err := s.Err(); err != nil {
		return fmt.Errorf("read answer: %w", err)
	}
	return nil
}
