package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/logger"
	"github.com/footstone/sqlguard/pkg/types"
	"github.com/footstone/sqlguard/pkg/validator"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <sql-file>...",
	Short: "Check SQL files against the safety rules",
	Long: `Check every statement in the given SQL files against the configured
safety rules and report the violations found.

The exit code follows the configured strategy: with strategy "block" any
violation fails the run; "warn" and "log" report and exit zero unless
--fail-on-violation forces a failure.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Flags for check command
	checkCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	checkCmd.Flags().String("strategy", "", "override the configured strategy (log, warn, block)")
	checkCmd.Flags().Bool("fail-on-violation", false, "exit with non-zero code if any violation is found, regardless of strategy")

	// Bind flags to viper
	_ = viper.BindPFlag("output", checkCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("strategy", checkCmd.Flags().Lookup("strategy"))
	_ = viper.BindPFlag("fail-on-violation", checkCmd.Flags().Lookup("fail-on-violation"))
}

// finding pairs a violation with the statement it came from for reporting.
type finding struct {
	File      string          `json:"file" yaml:"file"`
	Statement string          `json:"statement" yaml:"statement"`
	Violation types.Violation `json:"violation" yaml:"violation"`
}

func runCheck(_ *cobra.Command, args []string) error {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}
	log := logger.NewWithLevel(logLevel)
	slog.SetDefault(log.GetSlogLogger())

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if s := viper.GetString("strategy"); s != "" {
		cfg.Strategy = config.Strategy(s)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	v := validator.New(config.NewStore(cfg), validator.WithLogger(log))

	var findings []finding
	for _, sqlFile := range args {
		fileFindings, err := checkFile(v, sqlFile)
		if err != nil {
			return err
		}
		findings = append(findings, fileFindings...)
	}

	if err := outputFindings(findings, viper.GetString("output")); err != nil {
		return err
	}

	if len(findings) > 0 {
		if cfg.Strategy == config.StrategyBlock || viper.GetBool("fail-on-violation") {
			os.Exit(1)
		}
	}
	return nil
}

func checkFile(v *validator.Validator, sqlFile string) ([]finding, error) {
	content, err := os.ReadFile(sqlFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read SQL file %s", sqlFile)
	}

	var findings []finding
	for i, stmt := range splitStatements(string(content)) {
		c := &types.SQLContext{
			SQL:         stmt,
			Kind:        roughKind(stmt),
			StatementID: fmt.Sprintf("%s#%d", sqlFile, i+1),
			Layer:       types.LayerScanner,
		}
		res, err := v.Validate(c)
		if err != nil {
			return nil, errors.Wrapf(err, "validate statement %d of %s", i+1, sqlFile)
		}
		for _, viol := range res.Violations {
			findings = append(findings, finding{
				File:      sqlFile,
				Statement: stmt,
				Violation: *viol,
			})
		}
	}
	return findings, nil
}

// splitStatements breaks a script into statements on semicolons outside
// quoted strings, so the engine sees one statement per validation the way a
// runtime interceptor would.
func splitStatements(script string) []string {
	var stmts []string
	var quote byte
	start := 0
	flush := func(end int) {
		s := strings.TrimSpace(script[start:end])
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	for i := 0; i < len(script); i++ {
		ch := script[i]
		if quote != 0 {
			if ch == '\\' && quote != '`' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case ';':
			flush(i)
			start = i + 1
		}
	}
	flush(len(script))
	return stmts
}

// roughKind guesses the statement kind from the leading keyword. The engine
// dispatches on the parsed AST, so this only feeds logging.
func roughKind(stmt string) types.StatementKind {
	if len(stmt) < 6 {
		return types.KindUnknown
	}
	switch {
	case strings.EqualFold(stmt[:6], "select"):
		return types.KindSelect
	case strings.EqualFold(stmt[:6], "insert"):
		return types.KindInsert
	case strings.EqualFold(stmt[:6], "update"):
		return types.KindUpdate
	case strings.EqualFold(stmt[:6], "delete"):
		return types.KindDelete
	}
	return types.KindUnknown
}

func loadConfiguration() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if _, err := os.Stat("sqlguard.yaml"); err == nil {
		return config.LoadFromFile("sqlguard.yaml")
	}
	slog.Debug("no config file found, using defaults")
	return config.Default(), nil
}

func outputFindings(findings []finding, format string) error {
	switch format {
	case "json":
		return outputJSON(findings)
	case "yaml":
		return outputYAML(findings)
	case "text":
		return outputText(findings)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func outputJSON(findings []finding) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{
		"findings": findings,
	})
}

func outputYAML(findings []finding) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(map[string]interface{}{
		"findings": findings,
	})
}

func outputText(findings []finding) error {
	if len(findings) == 0 {
		fmt.Println("No issues found.")
		return nil
	}

	counts := make(map[types.RiskLevel]int)
	for _, f := range findings {
		counts[f.Violation.Level]++
		fmt.Printf("[%s] %s (%s)\n", f.Violation.Level, f.Violation.Rule, f.File)
		fmt.Printf("  %s\n", f.Violation.Message)
		if f.Violation.Suggestion != "" {
			fmt.Printf("  suggestion: %s\n", f.Violation.Suggestion)
		}
		fmt.Printf("  statement: %s\n", f.Statement)
		fmt.Println()
	}

	fmt.Printf("Summary: %d critical, %d high, %d medium, %d low\n",
		counts[types.RiskCritical], counts[types.RiskHigh], counts[types.RiskMedium], counts[types.RiskLow])
	return nil
}
