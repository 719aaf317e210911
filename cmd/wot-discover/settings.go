package main

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/spf13/cobra"

	"github.com/muurk/wot-discovery/discovery"
	"github.com/muurk/wot-discovery/internal/config"
	"github.com/muurk/wot-discovery/internal/logging"
)

// Discovery flags (persistent on root)
var (
	flagTimeout     time.Duration
	flagHTTPTimeout time.Duration
	flagInsecure    bool
	flagIPTraffic   string
	flagInterfaces  []string
)

func init() {
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "How long to browse (0 runs until interrupted)")
	rootCmd.PersistentFlags().DurationVar(&flagHTTPTimeout, "http-timeout", 0, "Timeout for each Thing Description request (0 disables)")
	rootCmd.PersistentFlags().BoolVar(&flagInsecure, "insecure", false, "Accept self-signed certificates from https Things")
	rootCmd.PersistentFlags().StringVar(&flagIPTraffic, "ip", config.IPTrafficBoth, "mDNS IP traffic (v4, v6, both)")
	rootCmd.PersistentFlags().StringSliceVar(&flagInterfaces, "interface", nil, "Network interface to browse on (repeatable; default all)")
}

// settings is the effective configuration of one command run
type settings struct {
	timeout     time.Duration
	httpTimeout time.Duration
	insecure    bool
	ipTraffic   string
	interfaces  []string
	format      string
	pretty      bool
}

// resolveSettings merges the config file with the flags the user set
func resolveSettings(cmd *cobra.Command, c *config.Config) settings {
	if c == nil {
		c = config.NewConfig()
	}

	s := settings{
		timeout:     time.Duration(c.Discovery.Timeout) * time.Second,
		httpTimeout: time.Duration(c.Discovery.HTTPTimeout) * time.Second,
		insecure:    c.Discovery.InsecureSkipVerify,
		ipTraffic:   c.Discovery.IPTraffic,
		interfaces:  c.Discovery.Interfaces,
		format:      c.Output.Format,
		pretty:      c.Output.Pretty,
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		s.timeout = flagTimeout
	}
	if flags.Changed("http-timeout") {
		s.httpTimeout = flagHTTPTimeout
	}
	if flags.Changed("insecure") {
		s.insecure = flagInsecure
	}
	if flags.Changed("ip") {
		s.ipTraffic = flagIPTraffic
	}
	if flags.Changed("interface") {
		s.interfaces = flagInterfaces
	}
	if flags.Changed("format") {
		s.format = flagFormat
	}
	if flags.Changed("pretty") {
		s.pretty = flagPretty
	}

	return s
}

// ipTypeFor maps an ip_traffic setting to the zeroconf selection
func ipTypeFor(traffic string) (zeroconf.IPType, error) {
	switch strings.ToLower(traffic) {
	case config.IPTrafficV4:
		return zeroconf.IPv4, nil
	case config.IPTrafficV6:
		return zeroconf.IPv6, nil
	case config.IPTrafficBoth, "":
		return zeroconf.IPv4AndIPv6, nil
	default:
		return 0, fmt.Errorf("invalid --ip value %q (expected v4, v6 or both)", traffic)
	}
}

// options converts settings into Discoverer options
func (s settings) options() ([]discovery.Option, error) {
	ipType, err := ipTypeFor(s.ipTraffic)
	if err != nil {
		return nil, err
	}

	opts := []discovery.Option{
		discovery.WithIPType(ipType),
		discovery.WithTimeout(s.httpTimeout),
		discovery.WithInsecureSkipVerify(s.insecure),
		discovery.WithLogger(logging.GetLogger()),
	}

	if len(s.interfaces) > 0 {
		ifaces := make([]net.Interface, 0, len(s.interfaces))
		for _, name := range s.interfaces {
			ifi, err := net.InterfaceByName(name)
			if err != nil {
				return nil, fmt.Errorf("unknown network interface %q: %w", name, err)
			}
			ifaces = append(ifaces, *ifi)
		}
		opts = append(opts, discovery.WithInterfaces(ifaces))
	}

	return opts, nil
}
