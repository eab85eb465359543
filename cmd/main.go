package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rawistudio/internal/cli/scheme/colours"
	"rawistudio/internal/config"
	"rawistudio/internal/domain/project"
	"rawistudio/internal/domain/voice"
	"rawistudio/internal/studio"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {

	config.SetDefaults()

	ctx, cancel := context.WithCancel(context.Background())

	// Graceful shutdown on Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		fmt.Println("\n" + colours.Warning.Sprint("👋 تم الإيقاف"))
		os.Exit(0)
	}()

	app, err := studio.New(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create studio")
	}

	rootCmd := &cobra.Command{
		Use:   "rawistudio",
		Short: "🎙️ Arabic multi-voice audiobook & podcast studio",
		Long: `
┌──────────────────────────────────────────┐
│  🎙️ Rawi Studio - استوديو الراوي         │
│  Multi-voice Arabic narration pipeline   │
│  audiobooks · podcasts · voice casting   │
└──────────────────────────────────────────┘

Rawi Studio splits Arabic text into narration segments, casts a distinct
voice for every role, synthesizes segment by segment and assembles one
master WAV file.
		`,
		Run: func(cmd *cobra.Command, args []string) {
			showWelcome()
		},
	}

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "🗣️ List the voice catalog",
		Long:  "Display all voice profiles, optionally filtered by dialect or gender",
		Run:   runVoices,
	}
	voicesCmd.Flags().StringP("dialect", "d", "", "Filter by dialect id (e.g. egyptian, fusha)")
	voicesCmd.Flags().StringP("gender", "g", "", "Filter by gender (male/female)")

	// Dialects command
	dialectsCmd := &cobra.Command{
		Use:   "dialects",
		Short: "🌍 List supported dialects",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			colours.Title.Println("🌍 Supported dialects")
			for _, d := range voice.Dialects {
				fmt.Printf("  • %-10s ", d.ID)
				colours.Info.Println(d.Title)
			}
		},
	}

	// Book production command
	bookCmd := &cobra.Command{
		Use:   "book [text-file]",
		Short: "📖 Produce an audiobook master from a text file",
		Long:  "Import a text, distribute voices over its segments and render the final master WAV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runBook(ctx, app, cmd, args)
		},
	}
	bookCmd.Flags().StringP("name", "n", "", "Project name")
	bookCmd.Flags().StringP("dialect", "d", viper.GetString("studio.dialect"), "Dialect id")
	bookCmd.Flags().BoolP("paragraphs", "p", false, "Split by paragraphs instead of smart distribution")
	bookCmd.Flags().Bool("pilot", false, "Render a pilot of the first segment before production")
	bookCmd.Flags().Bool("play", false, "Play the master after rendering")

	// Podcast production command
	podcastCmd := &cobra.Command{
		Use:   "podcast [text-file]",
		Short: "🎧 Produce a multi-speaker podcast from a text file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runPodcast(ctx, app, cmd, args)
		},
	}
	podcastCmd.Flags().StringP("dialect", "d", "egyptian", "Dialect id")
	podcastCmd.Flags().Bool("play", false, "Play the master after rendering")

	rootCmd.AddCommand(voicesCmd, dialectsCmd, bookCmd, podcastCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func showWelcome() {
	fmt.Println()
	colours.Title.Println("🌟 أهلاً بك في استوديو الراوي 🌟")
	fmt.Println()
	colours.Info.Println("🎙️ Available commands:")
	fmt.Println("  • rawistudio voices    - Browse the voice catalog")
	fmt.Println("  • rawistudio dialects  - List supported dialects")
	fmt.Println("  • rawistudio book      - Produce an audiobook master")
	fmt.Println("  • rawistudio podcast   - Produce a multi-speaker podcast")
	fmt.Println()
	colours.Prompt.Println("✨ جاهز للإنتاج الصوتي؟ ✨")
}

func runVoices(cmd *cobra.Command, args []string) {
	dialect, _ := cmd.Flags().GetString("dialect")
	gender, _ := cmd.Flags().GetString("gender")

	fmt.Println()
	colours.Title.Println("🗣️ Voice Catalog 🗣️")
	fmt.Println()

	count := 0
	for _, p := range voice.All() {
		if dialect != "" && p.Dialect != dialect {
			continue
		}
		if gender != "" && string(p.Gender) != strings.ToLower(gender) {
			continue
		}
		count++
		fmt.Printf("  %d. ", count)
		colours.Voice.Printf("%s", p.Name)
		fmt.Printf(" (%s)\n", p.ID)
		fmt.Printf("     🌍 %s | %s | 🎭 %s\n", voice.DialectTitle(p.Dialect), p.Gender, p.Category)
		colours.Info.Printf("     💡 %s\n", p.Description)
		fmt.Println()
	}

	if count == 0 {
		colours.Warning.Println("🔍 No voices match your filters.")
	} else {
		colours.Success.Printf("✨ %d voices available ✨\n", count)
	}
}

func runBook(ctx context.Context, app *studio.Studio, cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	dialect, _ := cmd.Flags().GetString("dialect")
	byParagraph, _ := cmd.Flags().GetBool("paragraphs")
	withPilot, _ := cmd.Flags().GetBool("pilot")
	play, _ := cmd.Flags().GetBool("play")

	text, err := os.ReadFile(args[0])
	if err != nil {
		colours.Error.Printf("❌ Failed to read text: %v\n", err)
		return
	}

	app.NewProject(name, dialect)
	if err := app.ImportText(string(text)); err != nil {
		colours.Error.Printf("❌ Import failed: %v\n", err)
		return
	}
	if err := app.Advance(project.StageImport); err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	colours.Info.Println("🧩 Distributing voices over segments...")
	if byParagraph {
		err = app.SplitByParagraph()
	} else {
		err = app.AutoDistribute(ctx)
	}
	if err != nil {
		colours.Error.Printf("❌ Distribution failed: %v\n", err)
		return
	}
	if err := app.Advance(project.StageDistribute); err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	for _, seg := range app.Project().Segments {
		fmt.Printf("  • %s — ", seg.Label)
		colours.Voice.Printf("%s", seg.SelectedVoice)
		fmt.Printf(" (%s)\n", seg.Role)
	}

	if withPilot {
		colours.Info.Println("🎧 Rendering pilot of the first segment...")
		if path, err := app.GeneratePilot(ctx, app.Project().Segments[0].ID); err != nil {
			colours.Warning.Printf("⚠️ Pilot failed (production can still proceed): %v\n", err)
		} else {
			colours.Success.Printf("✅ Pilot: %s\n", path)
		}
	}

	colours.Prompt.Println("🎬 Launching full production...")
	path, err := app.GenerateMaster(ctx, func(percent int) {
		colours.Progress.Printf("\r🎚️ Studio master render: %3d%%", percent)
		if percent == 100 {
			fmt.Println()
		}
	})
	if err != nil {
		fmt.Println()
		colours.Error.Printf("❌ Production failed, no master produced: %v\n", err)
		return
	}

	colours.Success.Printf("✅ Master ready: %s\n", path)
	if play {
		colours.Info.Println("🎵 Playing master...")
		if err := app.Play(path); err != nil {
			colours.Error.Printf("❌ Playback error: %v\n", err)
		}
	}
}

func runPodcast(ctx context.Context, app *studio.Studio, cmd *cobra.Command, args []string) {
	dialect, _ := cmd.Flags().GetString("dialect")
	play, _ := cmd.Flags().GetBool("play")

	text, err := os.ReadFile(args[0])
	if err != nil {
		colours.Error.Printf("❌ Failed to read text: %v\n", err)
		return
	}

	colours.Info.Println("🧠 Building podcast script...")
	if err := app.GeneratePodcastScript(ctx, string(text), dialect); err != nil {
		colours.Error.Printf("❌ Script generation failed: %v\n", err)
		return
	}

	session := app.Podcast()
	for _, sp := range session.Script.Speakers {
		vid := session.VoiceMap[sp.ID]
		p, _ := voice.ByID(vid)
		fmt.Printf("  • %s — ", sp.Role)
		colours.Voice.Printf("%s\n", p.Name)
	}

	colours.Prompt.Println("🎬 Producing podcast audio...")
	path, err := app.GeneratePodcastAudio(ctx, func(percent int) {
		colours.Progress.Printf("\r🎚️ Podcast render: %3d%%", percent)
		if percent == 100 {
			fmt.Println()
		}
	})
	if err != nil {
		fmt.Println()
		colours.Error.Printf("❌ Podcast production failed: %v\n", err)
		return
	}

	colours.Success.Printf("✅ Podcast ready: %s\n", path)
	if play {
		if err := app.Play(path); err != nil {
			colours.Error.Printf("❌ Playback error: %v\n", err)
		}
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("rawistudio")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.rawistudio")
	viper.AddConfigPath(".")

	viper.ReadInConfig()
}
