// Command is25lp-util reads, writes and erases an IS25LP040E flash chip
// through a UART-attached SPI bridge adapter.
//
// Usage:
//
//	is25lp-util <config.yaml> id
//	is25lp-util <config.yaml> info
//	is25lp-util <config.yaml> read <addr> <length> <out.bin>
//	is25lp-util <config.yaml> write <addr> <image.bin>
//	is25lp-util <config.yaml> erase sector|block32|block64 <addr>
//	is25lp-util <config.yaml> erase chip
//
// Addresses and lengths accept decimal or 0x-prefixed hex.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/kevko/go-is25lp/is25lp"
	"github.com/kevko/go-is25lp/serialbridge"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: is25lp-util <config.yaml> <id|info|read|write|erase> [args...]")
	}

	cfg, err := LoadConfig(os.Args[1])
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	bridge, err := serialbridge.Open(serialbridge.Config{
		Port:     cfg.Bridge.Port,
		BaudRate: cfg.Bridge.BaudRate,
		Timeout:  cfg.Bridge.timeout(),
	})
	if err != nil {
		log.Fatalf("bridge open failed: %v", err)
	}
	defer bridge.Close()

	dev := is25lp.New(bridge, deviceOptions(cfg, os.Args[2])...)
	ctx := context.Background()

	if err := dev.Init(ctx); err != nil {
		log.Fatalf("flash init failed: %v", err)
	}

	switch os.Args[2] {
	case "id":
		runID(ctx, dev)
	case "info":
		runInfo(ctx, dev)
	case "read":
		runRead(ctx, dev, os.Args[3:])
	case "write":
		runWrite(ctx, dev, os.Args[3:])
	case "erase":
		runErase(ctx, dev, os.Args[3:])
	default:
		log.Fatalf("unknown command %q", os.Args[2])
	}
}

func deviceOptions(cfg *Config, command string) []is25lp.Option {
	opts := []is25lp.Option{is25lp.WithLogger(stdLogger{})}

	if command == "write" {
		opts = append(opts, is25lp.WithProgressCallback(printProgress))
	}

	if cfg.Flash.ExpectedManufacturer != 0 || cfg.Flash.ExpectedCapacity != 0 {
		opts = append(opts, is25lp.WithExpectedIdentity(
			cfg.Flash.ExpectedManufacturer, cfg.Flash.ExpectedCapacity))
	}
	if cfg.Flash.PollIntervalUs > 0 {
		opts = append(opts, is25lp.WithPollInterval(
			time.Duration(cfg.Flash.PollIntervalUs)*time.Microsecond))
	}
	if cfg.Flash.ChipEraseTimeoutMs > 0 {
		opts = append(opts, is25lp.WithEraseTimeouts(0, 0, 0,
			time.Duration(cfg.Flash.ChipEraseTimeoutMs)*time.Millisecond))
	}

	return opts
}

func runID(ctx context.Context, dev *is25lp.Device) {
	identity, err := dev.ReadJEDECID(ctx)
	if err != nil {
		log.Fatalf("read JEDEC ID failed: %v", err)
	}
	legacy, err := dev.ReadDeviceID(ctx)
	if err != nil {
		log.Fatalf("read device ID failed: %v", err)
	}

	fmt.Printf("JEDEC ID:     0x%06X\n", identity.JEDEC())
	fmt.Printf("Manufacturer: 0x%02X\n", identity.Manufacturer)
	fmt.Printf("Memory type:  0x%02X\n", identity.MemoryType)
	fmt.Printf("Capacity:     0x%02X\n", identity.Capacity)
	fmt.Printf("Device ID:    0x%02X\n", legacy.Device)
}

func runInfo(ctx context.Context, dev *is25lp.Device) {
	info, err := dev.DeviceInfo(ctx)
	if err != nil {
		log.Fatalf("device info failed: %v", err)
	}

	fmt.Printf("JEDEC ID:  0x%06X\n", info.Identity.JEDEC())
	fmt.Printf("Unique ID: %X\n", info.UniqueID)
}

func runRead(ctx context.Context, dev *is25lp.Device, args []string) {
	if len(args) != 3 {
		log.Fatal("usage: read <addr> <length> <out.bin>")
	}
	addr := parseNum(args[0], "address")
	length := parseNum(args[1], "length")

	data, err := dev.FastRead(ctx, uint32(addr), int(length))
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}
	if err := os.WriteFile(args[2], data, 0o644); err != nil {
		log.Fatalf("write output file: %v", err)
	}
	fmt.Printf("read %d bytes from 0x%06X to %s\n", length, addr, args[2])
}

func runWrite(ctx context.Context, dev *is25lp.Device, args []string) {
	if len(args) != 2 {
		log.Fatal("usage: write <addr> <image.bin>")
	}
	addr := parseNum(args[0], "address")

	data, err := os.ReadFile(args[1])
	if err != nil {
		log.Fatalf("read image file: %v", err)
	}

	if err := dev.Write(ctx, uint32(addr), data); err != nil {
		log.Fatalf("write failed: %v", err)
	}
	fmt.Printf("wrote %d bytes at 0x%06X\n", len(data), addr)
}

func runErase(ctx context.Context, dev *is25lp.Device, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: erase sector|block32|block64 <addr> | erase chip")
	}

	var err error
	switch args[0] {
	case "chip":
		err = dev.EraseChip(ctx)
	case "sector", "block32", "block64":
		if len(args) != 2 {
			log.Fatalf("usage: erase %s <addr>", args[0])
		}
		addr := uint32(parseNum(args[1], "address"))
		switch args[0] {
		case "sector":
			err = dev.EraseSector(ctx, addr)
		case "block32":
			err = dev.EraseBlock32K(ctx, addr)
		case "block64":
			err = dev.EraseBlock64K(ctx, addr)
		}
	default:
		log.Fatalf("unknown erase granularity %q", args[0])
	}

	if err != nil {
		log.Fatalf("erase failed: %v", err)
	}
	fmt.Println("erase complete")
}

// printProgress writes page progress to stderr so redirected output stays
// clean.
func printProgress(p is25lp.Progress) {
	fmt.Fprintf(os.Stderr, "\r[%s] %5.1f%% page %d/%d", p.Phase, p.Percentage, p.CurrentPage, p.TotalPages)
	if p.Phase == is25lp.PhaseComplete {
		fmt.Fprintln(os.Stderr)
	}
}

func parseNum(s, what string) uint64 {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		log.Fatalf("invalid %s %q: %v", what, s, err)
	}
	return v
}

// stdLogger adapts the standard log package to the driver Logger interface.
type stdLogger struct{}

func (stdLogger) Debug(msg string, kv ...interface{}) {}

func (stdLogger) Info(msg string, kv ...interface{}) {
	log.Println(append([]interface{}{msg}, kv...)...)
}

func (stdLogger) Error(msg string, kv ...interface{}) {
	log.Println(append([]interface{}{"ERROR:", msg}, kv...)...)
}
