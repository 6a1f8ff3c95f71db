package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/mgutz/logxi" // Using a forked copy of this package results in build issues

	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag

	"github.com/TeamNorCal/presence"
	"github.com/TeamNorCal/presence/animation"
	"github.com/TeamNorCal/presence/model"
	"github.com/TeamNorCal/presence/version"
)

var (
	logger = logxi.New("presence")

	verbose    = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	configFile = flag.String("config", "", "Optional yaml configuration file")
	backend    = flag.String("backend", "", "Overrides the strip backend, one of opc, term or none")
	server     = flag.String("server", "", "Overrides the host:port of the fadecandy OPC server")
	probe      = flag.String("probe", "", "Overrides the http(s):// or tcp:// URL probed for network connectivity")
	boot       = flag.Bool("boot", true, "Play the boot and Wi-Fi connection sequence at start")
	dump       = flag.Bool("dump-config", false, "Print the effective configuration and exit")
	play       = flag.String("play", "", "Preset or mode name played at start in place of the boot sequence")
	logFile    = flag.String("log", "presence.log", "File receiving the log output while the term backend owns the terminal")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       LED animation engine → OPC (presence)      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "presence drives a small LED strip through boot, Wi-Fi status and feedback animations")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

// loadConfig reads the configuration file, if any, and applies the command
// line overrides that were explicitly set
func loadConfig() (cfg *presence.Config, err errors.Error) {
	if len(*configFile) != 0 {
		if cfg, err = presence.LoadConfig(*configFile); err != nil {
			return nil, err
		}
	} else {
		cfg = presence.DefaultConfig()
	}

	if len(*backend) != 0 {
		cfg.Strip.Backend = *backend
	}
	if len(*server) != 0 {
		cfg.Strip.Server = *server
	}
	if len(*probe) != 0 {
		cfg.Network.Probe = *probe
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "boot" {
			cfg.Gateway.Boot = *boot
		}
	})

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal(err.Error())
		os.Exit(-1)
	}

	if *dump {
		fmt.Println(cfg.String())
		return
	}

	if err = run(cfg); err != nil {
		logger.Error(err.Error())
		os.Exit(-2)
	}
}

// startRequest selects what is played once the gateway is running, a preset
// name takes precedence over a mode name
func startRequest(cfg *presence.Config, name string) (req presence.Request, err errors.Error) {
	if len(name) == 0 {
		if cfg.Gateway.Boot {
			return presence.Boot(), nil
		}
		return nil, nil
	}
	if preset, isPresent := cfg.PresetCatalog()[name]; isPresent {
		return presence.Play(preset), nil
	}
	if mode, ok := model.ParseMode(name); ok {
		return presence.Enter(mode), nil
	}

	known := cfg.PresetCatalog().Names()
	for _, mode := range model.Modes() {
		known = append(known, mode.String())
	}
	return nil, errors.New("unknown preset or mode").With("play", name).With("known", strings.Join(known, ",")).With("stack", stack.Trace().TrimRuntime())
}

// fileLogger opens a logger appending to the named file, used while the
// terminal is drawn by tcell
func fileLogger(name string) (log logxi.Logger, f *os.File, err errors.Error) {
	f, errGo := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if errGo != nil {
		return nil, nil, errors.Wrap(errGo).With("file", name).With("stack", stack.Trace().TrimRuntime())
	}
	log = logxi.NewLogger(logxi.NewConcurrentWriter(f), "presence")
	log.SetLevel(logxi.LevelWarn)
	if *verbose {
		log.SetLevel(logxi.LevelDebug)
	}
	return log, f, nil
}

func run(cfg *presence.Config) (err errors.Error) {

	start, err := startRequest(cfg, *play)
	if err != nil {
		return err
	}

	if cfg.Strip.Backend == "term" {
		log, f, err := fileLogger(*logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log
	}

	quitC := make(chan struct{})
	errorC := make(chan errors.Error, 16)

	once := sync.Once{}
	stop := func() { once.Do(func() { close(quitC) }) }

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-stopC:
			logger.Debug("signal received, stopping")
			stop()
		case <-quitC:
		}
	}()

	go func() {
		for {
			select {
			case err := <-errorC:
				logger.Warn(err.Error())
			case <-quitC:
				return
			}
		}
	}()

	var term *terminal
	var strip animation.Strip

	switch cfg.Strip.Backend {
	case "opc":
		strip = presence.NewOPCStrip(cfg.Strip.Server, uint8(cfg.Strip.Channel), errorC)
	case "term":
		if term, err = newTerminal(); err != nil {
			return err
		}
		defer term.Fini()
		strip = term.strip
	default:
		strip = presence.NullStrip{}
	}

	network, changeC, err := startNetwork(cfg, errorC, quitC)
	if err != nil {
		return err
	}

	engine := presence.NewEngine(cfg, strip, network, nil)
	gw := presence.NewGateway(engine, cfg.PollInterval())
	subscribeC := gw.Start(quitC)

	go runMonitoring(subscribeC, term, quitC)
	go followNetwork(gw, changeC, quitC)

	if start != nil {
		if !gw.Submit(start, time.Second) {
			logger.Warn("start request dropped", "play", *play)
		}
	}

	if term != nil {
		term.run(gw, cfg.PresetCatalog(), quitC, stop)
		return nil
	}

	<-quitC
	return nil
}

// startNetwork creates the network status source, without a probe the
// network is assumed to be up
func startNetwork(cfg *presence.Config, errorC chan<- errors.Error, quitC <-chan struct{}) (network animation.NetworkStatus, changeC chan bool, err errors.Error) {
	probeURL, err := cfg.ProbeURL()
	if err != nil {
		return nil, nil, err
	}
	if probeURL == nil {
		return presence.StaticNetwork(true), nil, nil
	}

	changeC = make(chan bool, 1)
	mon, err := presence.NewNetMonitor(*probeURL, cfg.ProbeInterval(), changeC, errorC)
	if err != nil {
		return nil, nil, err
	}
	go mon.Run(quitC)

	return mon, changeC, nil
}

// followNetwork restarts the connecting wave when a connection that had been
// established is lost
func followNetwork(gw *presence.Gateway, changeC <-chan bool, quitC <-chan struct{}) {
	if changeC == nil {
		return
	}
	for {
		select {
		case connected := <-changeC:
			logger.Debug("network changed", "connected", connected)
			if !connected {
				if !gw.Submit(presence.WifiConnecting(), time.Second) {
					logger.Warn("connecting animation dropped", "stack", stack.Trace().TrimRuntime())
				}
			}
		case <-quitC:
			return
		}
	}
}
