package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/edusession/internal/client/api"
	"github.com/dmitrijs2005/edusession/internal/client/quiz"
	"github.com/dmitrijs2005/edusession/internal/filex"
)

var errNotLoggedIn = errors.New("not logged in")

const certificatesDir = "certificates"

// Quiz generates a quiz on topic, asks every question and prints the score.
func (a *App) Quiz(ctx context.Context, topic string) error {
	payload, err := a.api.GenerateQuiz(ctx, api.QuizRequest{Topic: topic})
	if err != nil {
		fmt.Fprintln(a.out, "Error:", api.MessageOf(err))
		return err
	}

	questions, err := quiz.Parse(payload)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	answers := make([]string, 0, len(questions))
	for i, q := range questions {
		fmt.Fprintf(a.out, "\nQ%d. %s\n", i+1, q.Question)
		answer, err := GetChoice(a.reader, "Your answer", q.Options, a.out)
		if err != nil {
			return err
		}
		answers = append(answers, answer)
	}

	fmt.Fprintf(a.out, "\nScore: %d/%d\n", quiz.Score(questions, answers), len(questions))
	return nil
}

// Certificate downloads the completion certificate for courseID into the
// certificates directory.
func (a *App) Certificate(ctx context.Context, courseID string) error {
	user := a.recon.State().Current().User
	if user == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return errNotLoggedIn
	}

	dir, err := filex.EnsureSubdDir(certificatesDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, filex.SafeName(courseID)+".pdf")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	n, err := a.api.Certificate(ctx, api.CertificateRequest{
		UserID:   user.ID,
		CourseID: courseID,
		Name:     user.Name(),
	}, f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		fmt.Fprintln(a.out, "Error:", api.MessageOf(err))
		return err
	}

	fmt.Fprintf(a.out, "Saved certificate to %s (%d bytes)\n", path, n)
	return nil
}

// Progress stores the playback position when seconds is given, otherwise it
// prints the stored one.
func (a *App) Progress(ctx context.Context, courseID, seconds string) error {
	user := a.recon.State().Current().User
	if user == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return errNotLoggedIn
	}

	if seconds != "" {
		pos, err := strconv.ParseFloat(seconds, 64)
		if err != nil || pos < 0 {
			fmt.Fprintln(a.out, "Position must be a non-negative number of seconds.")
			return fmt.Errorf("invalid position %q", seconds)
		}
		err = a.api.SaveProgress(ctx, api.Progress{UserID: user.ID, CourseID: courseID, Position: pos})
		if err != nil {
			fmt.Fprintln(a.out, "Error:", api.MessageOf(err))
			return err
		}
		fmt.Fprintf(a.out, "Progress saved at %.0fs.\n", pos)
		return nil
	}

	p, err := a.api.GetProgress(ctx, user.ID, courseID)
	if err != nil {
		if code, ok := api.StatusOf(err); ok && code == http.StatusNotFound {
			fmt.Fprintln(a.out, "No progress yet.")
			return nil
		}
		fmt.Fprintln(a.out, "Error:", api.MessageOf(err))
		return err
	}

	done := ""
	if p.Completed {
		done = " (completed)"
	}
	fmt.Fprintf(a.out, "Position: %.0fs%s\n", p.Position, done)
	return nil
}
