package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jsphweid/fingerchart/constants"
	"github.com/jsphweid/fingerchart/demo"
	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/layout"
	"github.com/jsphweid/fingerchart/render"
	"github.com/jsphweid/fingerchart/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var conf = viper.New()

var rootCmd = &cobra.Command{
	Use:   "fingerchart [input.json output.pdf]",
	Short: "Clarinet fingering chart generator",
	Long: `Renders a printable clarinet fingering chart from a JSON description.

Without arguments a demo chart and its JSON source are written to the
output directory. With an input and an output file the input is validated
and rendered; outputs ending in .png are rendered as one image per page.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args) == 2 {
			return nil
		}
		return fmt.Errorf("usage: %s [<input.json> <output.pdf>]", cmd.Name())
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := chartOptions()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return RunDemo(cmd.OutOrStdout(), conf.GetString("out-dir"), opt)
		}
		return RenderChart(cmd.Context(), args[0], args[1], opt, conf.GetString("upload"))
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", "YAML file with flag defaults")
	f.Bool("verbose", false, "log placement and page breaks")
	f.Int("columns", constants.Columns, "diagrams per row")
	f.Float64("margin-mm", constants.Margin/constants.Mm, "page margin in millimetres")
	f.Float64("row-height-mm", constants.RowHeight/constants.Mm, "row height in millimetres")
	f.String("page", constants.DefaultPage, "paper size: A4, A4L, A5 or Letter")
	f.Float64("dpi", constants.DefaultDPI, "resolution of PNG output")
	f.String("out-dir", constants.GetOutputDir(), "directory for the demo files")

	rootCmd.Flags().String("upload", "", "upload the finished chart to s3://bucket/key")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load .env: %w", err)
	}

	conf.SetEnvPrefix(constants.EnvPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()
	if err := conf.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if path := conf.GetString("config"); path != "" {
		conf.SetConfigFile(path)
		if err := conf.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config %s: %w", path, err)
		}
	}

	level := slog.LevelInfo
	if conf.GetBool("verbose") {
		level = slog.LevelDebug
	}
	layout.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// chartOptions builds the render options from flags, environment and
// config file.
func chartOptions() (render.Options, error) {
	opt := render.DefaultOptions()
	size, err := layout.PageSizeByName(conf.GetString("page"))
	if err != nil {
		return opt, err
	}
	opt.Layout.Page = size
	opt.Layout.Columns = conf.GetInt("columns")
	opt.Layout.Margin = conf.GetFloat64("margin-mm") * constants.Mm
	opt.Layout.RowHeight = conf.GetFloat64("row-height-mm") * constants.Mm
	opt.DPI = conf.GetFloat64("dpi")
	return opt, opt.Layout.Validate()
}

// RunDemo writes the demo JSON and its rendered chart into dir and
// reports both paths on w.
func RunDemo(w io.Writer, dir string, opt render.Options) error {
	jsonPath := filepath.Join(dir, constants.DemoJSONName)
	pdfPath := filepath.Join(dir, constants.DemoPDFName)

	entries := demo.Entries()
	if err := file.WriteEntries(jsonPath, entries); err != nil {
		return fmt.Errorf("error writing demo input: %w", err)
	}
	if _, err := render.Generate(entries, pdfPath, opt); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}

	fmt.Fprintln(w, "Demo files created:")
	fmt.Fprintf(w, "  JSON: %s\n", jsonPath)
	fmt.Fprintf(w, "  PDF : %s\n", pdfPath)
	return nil
}

// RenderChart loads in, renders it to out and, when upload is set, copies
// the result to S3. Nothing is written when the input is invalid.
func RenderChart(ctx context.Context, in, out string, opt render.Options, upload string) error {
	var dest storage.Destination
	if upload != "" {
		var err error
		if dest, err = storage.ParseDestination(upload); err != nil {
			return err
		}
	}

	entries, err := file.Load(in)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	plan, err := render.Generate(entries, out, opt)
	if err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}

	if upload == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return uploadAll(ctx, dest, out, plan)
}

// uploadAll uploads the document, or every page of a PNG set.
func uploadAll(ctx context.Context, dest storage.Destination, out string, plan *layout.Plan) error {
	pages := 1
	if strings.EqualFold(filepath.Ext(out), ".png") {
		pages = max(plan.Pages, 1)
	}
	for n := 1; n <= pages; n++ {
		d := dest.ObjectFor(out)
		d.Key = render.PagePath(d.Key, n)
		if err := storage.Upload(ctx, d, render.PagePath(out, n)); err != nil {
			return err
		}
	}
	return nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
