package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/apiclient"
	"alfredoptarigan/interview-prep/internal/config"
	"alfredoptarigan/interview-prep/internal/handlers"
	"alfredoptarigan/interview-prep/internal/logger"
	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
	"alfredoptarigan/interview-prep/internal/wizard"
)

const (
	PromptAnswer     = "Answer a question"
	PromptEvaluate   = "Get AI evaluation"
	PromptReport     = "Download report"
	PromptRegenerate = "Generate new questions"
	PromptNewResume  = "Choose another resume"
	PromptQuit       = "Quit"
	PromptBack       = "back"
)

var errExit = errors.New("exit requested")

var practiceCmd = &cobra.Command{
	Use:   "practice [resume]",
	Short: "Practice an interview in the terminal against a running server",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		practice(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)

	practiceCmd.Flags().StringP("api-url", "u", "", "base url of the interview prep server (overrides API_URL)")
	practiceCmd.Flags().Duration("timeout", 2*time.Minute, "timeout of a single request to the server")
	practiceCmd.Flags().Bool("local-extract", false, "read the resume locally instead of uploading it")
	practiceCmd.Flags().Bool("server-report", false, "render the report on the server instead of locally")
	practiceCmd.Flags().String("report-dir", ".", "directory the report is saved to")

	viper.BindPFlag("API_URL", practiceCmd.Flags().Lookup("api-url"))
}

// localExtractBackend reads the résumé on this machine, like a browser
// client would, and only talks to the server for generation and scoring.
type localExtractBackend struct {
	*apiclient.Client
	extractor services.ResumeExtractor
}

func (b localExtractBackend) Extract(filePath string) (*models.ResumeDocument, error) {
	return b.extractor.ExtractFile(filePath)
}

type practiceRun struct {
	session      *wizard.Session
	client       *apiclient.Client
	logger       *zap.Logger
	serverReport bool
	reportDir    string

	// generatePending is set by a newly chosen file.
	generatePending bool
}

func practice(cmd *cobra.Command, args []string) {
	cfg := config.LoadInto(viper.GetViper())

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	localExtract, _ := cmd.Flags().GetBool("local-extract")
	serverReport, _ := cmd.Flags().GetBool("server-report")
	reportDir, _ := cmd.Flags().GetString("report-dir")

	client := apiclient.New(cfg.Client.APIURL, timeout)

	var backend wizard.Backend = client
	if localExtract {
		backend = localExtractBackend{Client: client, extractor: services.NewResumeExtractor()}
	}

	run := &practiceRun{
		session:      wizard.NewSession(backend),
		client:       client,
		logger:       zlog,
		serverReport: serverReport,
		reportDir:    reportDir,
	}

	zlog.Info("starting interview practice", zap.String("api_url", cfg.Client.APIURL))

	initial := ""
	if len(args) > 0 {
		initial = args[0]
	}

	if err := run.loop(initial); err != nil && !errors.Is(err, errExit) {
		zlog.Fatal("exiting", zap.Error(err))
	}
}

func (r *practiceRun) loop(initialFile string) error {
	if err := r.chooseFile(initialFile); err != nil {
		return err
	}

	for {
		if r.generatePending {
			r.generatePending = false
			r.generate()
		}

		items := r.menuItems()
		menu := promptui.Select{
			Label: fmt.Sprintf("Step %d: %s", r.session.Step(), r.session.Step()),
			Items: items,
		}

		_, action, err := menu.Run()
		if err != nil {
			return quitOnInterrupt(err)
		}

		if err := r.handleAction(action); err != nil {
			return err
		}
	}
}

func (r *practiceRun) menuItems() []string {
	items := make([]string, 0, 6)

	if len(r.session.Questions()) > 0 {
		items = append(items, PromptAnswer)
	}
	if r.session.CanEvaluate() {
		items = append(items, PromptEvaluate)
	}
	if r.session.Step() == wizard.StepReviewed {
		items = append(items, PromptReport)
	}

	return append(items, PromptRegenerate, PromptNewResume, PromptQuit)
}

func (r *practiceRun) handleAction(action string) error {
	switch action {
	case PromptAnswer:
		return r.answer()
	case PromptEvaluate:
		r.evaluate()
		return nil
	case PromptReport:
		return r.saveReport()
	case PromptRegenerate:
		r.generate()
		return nil
	case PromptNewResume:
		return r.chooseFile("")
	case PromptQuit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (r *practiceRun) chooseFile(filePath string) error {
	for {
		if filePath == "" {
			prompt := promptui.Prompt{
				Label: "Resume file (pdf, docx or txt)",
			}

			var err error
			filePath, err = prompt.Run()
			if err != nil {
				return quitOnInterrupt(err)
			}
		}

		filePath = strings.TrimSpace(filePath)
		if err := r.session.ChooseFile(filePath); err == nil {
			r.logger.Info("resume selected", zap.String("file", filePath))
			r.generatePending = true
			return nil
		}

		fmt.Println(r.session.Message())
		filePath = ""
	}
}

func (r *practiceRun) generate() {
	fmt.Println("⏳ Generating questions...")

	if err := r.session.GenerateQuestions(); err != nil {
		r.logger.Debug("generating questions failed", zap.Error(err))
		fmt.Println(r.session.Message())
		return
	}

	fmt.Println()
	for i, question := range r.session.Questions() {
		fmt.Printf("Q%d: %s\n", i+1, question)
	}
	fmt.Println()
}

func (r *practiceRun) answer() error {
	questions := r.session.Questions()

	items := make([]string, 0, len(questions)+1)
	for i, question := range questions {
		mark := " "
		if r.session.Answer(i) != "" {
			mark = "✔"
		}
		items = append(items, fmt.Sprintf("%s Q%d: %s", mark, i+1, question))
	}

	questionPrompt := promptui.Select{
		Label: "Choose a question and press ENTER",
		Items: append(items, PromptBack),
		Size:  len(items) + 1,
	}

	index, _, err := questionPrompt.Run()
	if err != nil {
		return quitOnInterrupt(err)
	}
	if index == len(items) {
		return nil
	}

	answerPrompt := promptui.Prompt{
		Label:     fmt.Sprintf("Q%d answer", index+1),
		Default:   r.session.Answer(index),
		AllowEdit: true,
	}

	answer, err := answerPrompt.Run()
	if err != nil {
		return quitOnInterrupt(err)
	}

	return r.session.SetAnswer(index, answer)
}

func (r *practiceRun) evaluate() {
	fmt.Println("⏳ Evaluating answers...")

	if err := r.session.Evaluate(); err != nil {
		r.logger.Debug("evaluating answers failed", zap.Error(err))
		fmt.Println(r.session.Message())
		return
	}

	var buf bytes.Buffer
	if err := services.WriteTextReport(&buf, r.session.ReportRows()); err != nil {
		r.logger.Error("rendering results", zap.Error(err))
		return
	}
	fmt.Println()
	fmt.Print(buf.String())
}

func (r *practiceRun) saveReport() error {
	formatPrompt := promptui.Select{
		Label: "Report format",
		Items: []string{handlers.ReportFormatXLSX, handlers.ReportFormatText, PromptBack},
	}

	_, format, err := formatPrompt.Run()
	if err != nil {
		return quitOnInterrupt(err)
	}
	if format == PromptBack {
		return nil
	}

	data, err := r.renderReport(format)
	if err != nil {
		r.logger.Error("building report", zap.Error(err))
		return nil
	}

	filename := filepath.Join(r.reportDir, "interview-feedback."+format)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		r.logger.Error("saving report", zap.String("filename", filename), zap.Error(err))
		return nil
	}

	r.logger.Info("report saved", zap.String("filename", filename))
	return nil
}

func (r *practiceRun) renderReport(format string) ([]byte, error) {
	if r.serverReport {
		return r.client.Report(format, r.session.ReportRequest())
	}

	rows := r.session.ReportRows()
	if format == handlers.ReportFormatXLSX {
		return services.BuildXLSXReport(rows)
	}

	var buf bytes.Buffer
	if err := services.WriteTextReport(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func quitOnInterrupt(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}
