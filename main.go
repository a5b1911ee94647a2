package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/devicetx/api"
	"github.com/matt-g-everett/devicetx/stream"
	"github.com/matt-g-everett/devicetx/util"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Streamer   *stream.Streamer
	Controller *stream.Controller
	Api        *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Streamer.Subscribe(a.Controller); err != nil {
		log.Printf("Subscribe: %v", err)
	}
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	a.Config, err = stream.ReadConfig(f)
	if err != nil {
		log.Fatalf("Config %s: %v", configPath, err)
	}
}

func (a *app) build() {
	engineConfig, err := a.Config.EngineConfig()
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Easing %q: %.3f", a.Config.Animation.Easing, util.SampleCurve(5, engineConfig.Easing))

	engine, err := stream.NewEngine(engineConfig)
	if err != nil {
		log.Fatal(err)
	}

	sequencer, err := stream.NewSequencer(engineConfig.InitialStep, a.Config.Animation.Period)
	if err != nil {
		log.Fatal(err)
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	a.Streamer = stream.NewStreamer(a.Config, a.Client)
	a.Api = api.NewApi(a.Config.HTTP.Static)
	a.Controller = stream.NewController(engine, sequencer, a.Config.Animation.FrameRate, a.Streamer, a.Api)
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal(token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := a.Api.Serve(a.Config.HTTP.Addr); err != nil {
			log.Printf("HTTP: %v", err)
		}
	}()

	if err := a.Controller.Run(ctx); err != nil && err != context.Canceled {
		log.Println(err)
	}
	log.Println("Stopped")
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config.Animation)

	a.build()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a.run(ctx)
}
