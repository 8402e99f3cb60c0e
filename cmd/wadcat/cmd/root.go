package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zeebo/errs"

	"github.com/stuarthighley/wadcat"
)

// options holds the parsed command line.
type options struct {
	maps     bool
	mapName  string
	raw      string
	sectors  bool
	things   bool
	sidedefs bool
	linedefs bool
	vertexes bool
	short    bool
	sep      string
	strict   bool
	verbose  bool
}

var modeFlags = []string{"maps", "raw", "sectors", "things", "sidedefs", "linedefs", "vertexes"}

func (o *options) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.maps, "maps", "m", false, "Print only map names present in WAD")
	fs.StringVarP(&o.mapName, "map", "M", "", "Print only lumps of the map matching `MAPNAME` ('x' matches any character, e.g. MAPxx)")
	fs.StringVarP(&o.raw, "raw", "x", "", "Raw print contents of all lumps named `LUMPNAME` (implies --short)")
	fs.BoolVarP(&o.sectors, "sectors", "S", false, "Decode and print only SECTORS lump(s)")
	fs.BoolVarP(&o.things, "things", "t", false, "Decode and print only THINGS lump(s)")
	fs.BoolVarP(&o.sidedefs, "sidedefs", "s", false, "Decode and print only SIDEDEFS lump(s)")
	fs.BoolVarP(&o.linedefs, "linedefs", "l", false, "Decode and print only LINEDEFS lump(s)")
	fs.BoolVarP(&o.vertexes, "vertexes", "v", false, "Decode and print only VERTEXES lump(s)")
	fs.BoolVarP(&o.short, "short", "q", false, "Print only lump names")
	fs.StringVarP(&o.sep, "separator", "n", "\n", "Separate printed lumps with the first character of `SEP`")
	fs.BoolVar(&o.strict, "strict", false, "Fail on map lumps that are not a whole number of records")
	fs.BoolVar(&o.verbose, "verbose", false, "Log progress to stderr")
}

// selector translates the flags into a scan selector.
func (o *options) selector() (wad.Selector, error) {
	sel := wad.Selector{Mode: wad.ModeList, Map: o.mapName, Strict: o.strict}
	switch {
	case o.raw != "":
		sel.Mode = wad.ModeRaw
		sel.Lump = upperASCII(o.raw)
	case o.maps:
		sel.Mode = wad.ModeMaps
	case o.sectors:
		sel.Mode = wad.ModeSectors
	case o.things:
		sel.Mode = wad.ModeThings
	case o.sidedefs:
		sel.Mode = wad.ModeSidedefs
	case o.linedefs:
		sel.Mode = wad.ModeLinedefs
	case o.vertexes:
		sel.Mode = wad.ModeVertexes
	}
	if o.sep == "" {
		return sel, errs.New("line separator must not be empty")
	}
	return sel, sel.Validate()
}

// upperASCII upper-cases a..z and leaves every other byte alone, so lump
// names holding bytes above 0x7f still match.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "wadcat [flags] file.wad ...",
		Short: "Command-line WAD lump printer",
		Long: `wadcat lists the lumps of Doom WAD files, prints raw lump contents and
decodes the THINGS, LINEDEFS, SIDEDEFS, VERTEXES and SECTORS map lumps.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.verbose {
				wad.SetLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			}
			sel, err := o.selector()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), o.short || sel.Mode == wad.ModeRaw, o.sep[0], len(args) > 1)
			return wad.ScanFiles(args, sel, p)
		},
	}
	o.register(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(modeFlags...)
	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
