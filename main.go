package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/Grinrin1108/Utool/home"
	_ "github.com/Grinrin1108/Utool/proc"
	"github.com/Grinrin1108/Utool/sys"
)

const pidFile = ".utool.pid"

func main() {
	silent := flag.Bool("silent", false, "Disable all log output")
	flag.Parse()

	if *silent {
		sys.SetSilentMode(true)
	}

	// 1. Check for and kill an old instance
	if pidData, err := os.ReadFile(pidFile); err == nil {
		if oldPid, err := strconv.Atoi(string(pidData)); err == nil && oldPid != os.Getpid() {
			if process, err := os.FindProcess(oldPid); err == nil {
				if err := process.Signal(syscall.Signal(0)); err == nil {
					sys.LogInfo(sys.MsgBotKillingOld, oldPid)
					if err := process.Signal(syscall.SIGTERM); err == nil {
						for i := 0; i < 50; i++ {
							if err := process.Signal(syscall.Signal(0)); err != nil {
								break
							}
							time.Sleep(100 * time.Millisecond)
						}
						sys.LogInfo(sys.MsgBotOldTerminated)
					} else {
						sys.LogWarn(sys.MsgBotKillFail, err)
					}
				}
			}
		}
	}

	// 2. Write PID file
	sys.StartupPID = os.Getpid()
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(sys.StartupPID)), 0644); err != nil {
		sys.LogWarn(sys.MsgBotPIDWriteFail, err)
	}
	defer os.Remove(pidFile)

	// 3. Run bot (blocks until shutdown signal)
	if err := run(*silent); err != nil {
		sys.LogFatal("%v", err)
	}
}

func run(silent bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	sys.SetAppContext(ctx)

	cfg, err := sys.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := sys.OpenStore(ctx, cfg.DatabasePath, cfg.Timezone)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()
	sys.SetStore(store)

	client, err := sys.CreateClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close(context.Background())

	// Command registration runs in parallel with the gateway connect.
	go func() {
		if err := sys.RegisterCommands(client, cfg.GuildID); err != nil {
			sys.LogError(sys.MsgBotRegisterFail, err)
		}
	}()

	if err := client.OpenGateway(ctx); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}

	<-ctx.Done()
	if !silent {
		fmt.Println()
	}

	sys.ShutdownDaemons()
	sys.LogInfo(sys.MsgBotShutdown, "Utool")

	return nil
}
