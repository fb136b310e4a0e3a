package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"gopkg.in/yaml.v2"

	"smartdoor/door"
	"smartdoor/face"
	"smartdoor/indicator"
	"smartdoor/mqtt"
	"smartdoor/reader"
	"smartdoor/video"
)

var myBuild string

// App holds the application state and dependencies.
type App struct {
	cfg       *Config
	fuser     *Fuser
	door      door.Opener
	indicator indicator.Indicator
	display   *video.Display
	mqtt      *mqtt.Client

	opening     atomic.Bool
	lastGranted bool // written only from the fuser's publish path

	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	fmt.Printf("smartdoor build %s\n", myBuild)

	cfgfile := flag.String("cfg", "smartdoor.cfg", "Config file")
	flag.Parse()

	f, err := os.Open(*cfgfile)
	if err != nil {
		log.Fatalf("Open config: %v", err)
	}
	var cfg Config
	err = yaml.NewDecoder(f).Decode(&cfg)
	f.Close()
	if err != nil {
		log.Fatalf("Decode config: %v", err)
	}

	if cfg.ClientID == "" {
		log.Fatal("client_id missing in config file")
	}
	if cfg.HoldSecs == 0 {
		cfg.HoldSecs = 3
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg:    &cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	// Persisted stores: missing files degrade, they do not abort.
	dir, err := LoadDirectory(cfg.TagFile)
	if err != nil {
		log.Printf("Warning: could not load tag file: %v", err)
		dir = &Directory{names: map[string]string{}}
	}
	log.Printf("Tag directory: %d enrolled tags", dir.Len())

	set, err := face.LoadSet(cfg.Face.Encodings)
	if err != nil {
		log.Printf("Warning: could not load face encodings: %v", err)
		set = face.NewSet(nil)
	}
	log.Printf("Face encodings: %d enrolled samples", set.Len())

	app.indicator, err = indicator.New(cfg.Indicator)
	if err != nil {
		log.Fatalf("Init indicator: %v", err)
	}
	app.indicator.Idle()

	app.door, err = door.New(cfg.Door)
	if err != nil {
		log.Fatalf("Init door: %v", err)
	}

	if cfg.VideoEnabled {
		if !video.ScreenSupported() {
			log.Fatalf("Video enabled but screen support not compiled in")
		}
		app.display, err = video.New()
		if err != nil {
			log.Fatalf("Init display: %v", err)
		}
	}

	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, mqtt.Handlers{
		OnUnlock: app.remoteUnlock,
	})
	if err != nil {
		log.Fatalf("Init MQTT: %v", err)
	}

	app.fuser = NewFuser(time.Duration(cfg.GrantWindowSecs)*time.Second, app.onDecision)

	// Workers release their own devices; main waits for them before
	// exiting so those closes actually run.
	var workers sync.WaitGroup

	// RFID channel.
	src, err := reader.New(cfg.Reader)
	if err != nil {
		log.Fatalf("Init reader: %v", err)
	}
	scanner := &tagScanner{
		src:   src,
		dir:   dir,
		fuser: app.fuser,
		onFatal: func(error) {
			app.indicator.Fault()
		},
	}
	workers.Add(1)
	go func() {
		defer workers.Done()
		scanner.run(ctx)
	}()

	// Face channel.
	if cfg.Face.Enabled {
		if !face.VisionSupported() {
			log.Fatalf("Face enabled but vision support not compiled in")
		}
		cam, err := face.OpenCamera(cfg.Face.Camera)
		if err != nil {
			log.Fatalf("Open camera: %v", err)
		}
		det, err := face.NewDetector(cfg.Face.ModelDir)
		if err != nil {
			cam.Close()
			log.Fatalf("Init face detector: %v", err)
		}
		loop := face.NewLoop(cam, det, set, cfg.Face.Tolerance, app.onFace)
		workers.Add(1)
		go func() {
			defer workers.Done()
			loop.Run(ctx)
		}()
	}

	go func() {
		if err := app.mqtt.Connect(); err != nil {
			log.Printf("MQTT connect: %v", err)
		}
	}()
	go app.pingSender()

	// Wait for shutdown signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down...")
	cancel()
	workers.Wait()

	app.mqtt.Disconnect()
	app.door.Release()
	app.indicator.Release()
	if app.display != nil {
		app.display.Shutdown()
		app.display.Release()
	}

	fmt.Println("Shutdown complete")
}

// onFace translates a recognition result into a face channel event.
func (app *App) onFace(r face.Result) {
	id := Identity{Kind: KindUnknown}
	if r.Known {
		id = Identity{Kind: KindKnown, Name: r.Name}
	}
	app.fuser.FaceSeen(id, r.Frame)
}

// onDecision is the presentation sink. The fuser serializes calls, so
// lastGranted needs no extra locking; everything here must stay
// non-blocking.
func (app *App) onDecision(st State, frame image.Image) {
	status := "Denied"
	if st.Granted {
		status = "Granted"
	}

	if app.display != nil {
		app.display.Show(st.Face.Display(), status, frame)
	}

	if st.Granted {
		app.indicator.Granted()
	} else {
		app.indicator.Denied()
	}

	if st.Granted != app.lastGranted {
		app.lastGranted = st.Granted
		log.Printf("Access %s: face=%s tag=%s", status, st.Face.Display(), st.Tag.Display())
		app.mqtt.PublishAccess(st.Face.Display(), st.Tag.Display(), st.Granted)
		if st.Granted {
			app.openDoor()
		}
	}
}

// openDoor pulses the latch for the configured hold time. A single
// pulse runs at a time; further grants while open are absorbed.
func (app *App) openDoor() {
	if !app.opening.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer app.opening.Store(false)

		if err := app.door.Open(); err != nil {
			log.Printf("Door open: %v", err)
			return
		}
		time.Sleep(time.Duration(app.cfg.HoldSecs) * time.Second)
		if err := app.door.Close(); err != nil {
			log.Printf("Door close: %v", err)
		}
	}()
}

// remoteUnlock handles an unlock command from the broker.
func (app *App) remoteUnlock() {
	log.Printf("Remote unlock requested")
	app.openDoor()
}

func (app *App) pingSender() {
	ticker := time.NewTicker(120 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			app.mqtt.Ping()
		}
	}
}
