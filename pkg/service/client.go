/*
 * Copyright 2026 Netswap Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/netswap/verifier/pkg/db"
	"github.com/netswap/verifier/pkg/fetcher"
	"github.com/netswap/verifier/pkg/logger"
	"github.com/netswap/verifier/pkg/models"
	"github.com/netswap/verifier/pkg/parser"
	"github.com/netswap/verifier/pkg/repository"
)

// ClientCollectionService builds one record per client MAC seen on a
// replacement device by joining the MAC table with interface status,
// ARP, ping, and ACL results. ARP comes from the maintenance window's
// gateway devices, tried in priority order.
type ClientCollectionService struct {
	runner cycleRunner
	fetch  fetcher.Fetcher

	tenantGroup string
}

// NewClientCollectionService builds the client join service. The
// refresher, when present, regenerates downstream comparisons after
// each batch; pass nil for none.
func NewClientCollectionService(
	store db.Store,
	repos *repository.Registry,
	fetch fetcher.Fetcher,
	refresher repository.ComparisonRefresher,
	cfg Config,
	log logger.Logger,
) *ClientCollectionService {
	cfg = cfg.withDefaults()

	componentLog := log.WithComponent("client-collection")

	opts := []repository.Option{}
	if refresher != nil {
		opts = append(opts, repository.WithRefresher(refresher))
	}

	repos.Install(repository.New(models.JobClientCollection, store, componentLog, opts...))

	return &ClientCollectionService{
		runner: cycleRunner{
			store:       store,
			repos:       repos,
			concurrency: cfg.Concurrency,
			logger:      componentLog,
		},
		fetch:       fetch,
		tenantGroup: cfg.TenantGroup,
	}
}

// Collect runs one client-join cycle across the window's devices.
func (s *ClientCollectionService) Collect(ctx context.Context, maintenanceID string) (*models.CollectionResult, error) {
	return withDeadlockRetry(ctx, s.runner.logger, models.JobClientCollection, func(ctx context.Context) (*models.CollectionResult, error) {
		arp := s.resolveArp(ctx, maintenanceID)

		return s.runner.run(ctx, models.JobClientCollection, maintenanceID, apiErrorPrefix,
			func(ctx context.Context, dev models.MaintenanceDevice) (string, []models.Record, error) {
				return s.buildClients(ctx, dev, arp)
			})
	})
}

// resolveArp builds the MAC-to-IP index from the window's ARP sources.
// Sources are tried in priority order and the first answer for a MAC
// wins; a dead source is skipped, not fatal.
func (s *ClientCollectionService) resolveArp(ctx context.Context, maintenanceID string) map[string]string {
	byMAC := make(map[string]string)

	sources, err := s.runner.store.ListArpSources(ctx, maintenanceID)
	if err != nil {
		s.runner.logger.Warn().Err(err).Msg("listing arp sources failed")
		return byMAC
	}

	for _, src := range sources {
		deviceType := models.ParseDeviceType(src.Vendor)
		vars := fetcher.DeviceVars(src.Hostname, src.IPAddress, deviceType, s.tenantGroup)

		body, err := s.fetch.Fetch(ctx, models.APIArp, vars, nil)
		if err != nil {
			s.runner.logger.Warn().
				Err(err).
				Str("hostname", src.Hostname).
				Msg("arp source unreachable, trying next")

			continue
		}

		p, err := parser.GetOrError(deviceType, models.APIArp)
		if err != nil {
			s.runner.logger.Warn().Err(err).Str("hostname", src.Hostname).Msg("no arp parser")
			continue
		}

		for _, item := range p.Parse(body) {
			entry, ok := item.(models.ArpRecord)
			if !ok {
				continue
			}

			if _, seen := byMAC[entry.MACAddress]; !seen {
				byMAC[entry.MACAddress] = entry.IPAddress
			}
		}
	}

	return byMAC
}

func (s *ClientCollectionService) buildClients(
	ctx context.Context,
	dev models.MaintenanceDevice,
	arp map[string]string,
) (string, []models.Record, error) {
	deviceType := dev.NewDeviceType()
	hostname := dev.NewHostname
	vars := fetcher.DeviceVars(hostname, dev.NewIPAddress, deviceType, s.tenantGroup)

	macAPI, ok := macTableAPIName(deviceType)
	if !ok {
		return "", nil, fmt.Errorf("no mac table indicator for vendor %q", dev.NewVendor)
	}

	raw, err := s.fetch.Fetch(ctx, macAPI, vars, nil)
	if err != nil {
		return "", nil, fmt.Errorf("fetching mac table: %w", err)
	}

	p, err := parser.GetOrError(deviceType, macAPI)
	if err != nil {
		return "", nil, err
	}

	status := s.interfaceStatus(ctx, deviceType, vars, hostname)
	acls := s.aclBindings(ctx, deviceType, vars, hostname)
	pings := s.pingResults(ctx, deviceType, vars, hostname)

	clients := make([]models.ClientRecord, 0)

	for _, item := range p.Parse(raw) {
		entry, ok := item.(models.MacTableRecord)
		if !ok {
			continue
		}

		key := models.InterfaceKey(entry.InterfaceName)

		st, hasStatus := status[key]
		if len(status) > 0 && !hasStatus {
			// MACs learned on uplinks and aggregates are not clients.
			continue
		}

		rec := models.ClientRecord{
			MACAddress:     entry.MACAddress,
			SwitchHostname: hostname,
			InterfaceName:  entry.InterfaceName,
			VLANID:         entry.VLANID,
		}

		if hasStatus {
			rec.Speed = st.Speed
			rec.Duplex = st.Duplex
			rec.LinkStatus = st.LinkStatus
		}

		if ip, found := arp[entry.MACAddress]; found {
			rec.IPAddress = ip

			if reachable, probed := pings[ip]; probed {
				v := reachable
				rec.PingReachable = &v
			}
		}

		if rules := acls[key]; len(rules) > 0 {
			joined := strings.Join(rules, "; ")
			rec.ACLRulesApplied = &joined
		}

		clients = append(clients, rec)
	}

	sort.Slice(clients, func(i, j int) bool {
		if clients[i].MACAddress != clients[j].MACAddress {
			return clients[i].MACAddress < clients[j].MACAddress
		}

		return clients[i].InterfaceName < clients[j].InterfaceName
	})

	items := make([]models.Record, 0, len(clients))
	for _, c := range clients {
		items = append(items, c)
	}

	return raw, items, nil
}

// interfaceStatus returns the device's physical port state keyed by
// canonical interface name. Best effort: a failed fetch yields an
// empty map and the join proceeds without port state.
func (s *ClientCollectionService) interfaceStatus(
	ctx context.Context,
	deviceType models.DeviceType,
	vars map[string]string,
	hostname string,
) map[string]models.InterfaceStatusRecord {
	byKey := make(map[string]models.InterfaceStatusRecord)

	apiName, ok := interfaceStatusAPIName(deviceType)
	if !ok {
		return byKey
	}

	items := s.fetchParsed(ctx, apiName, deviceType, vars, hostname)

	for _, item := range items {
		st, ok := item.(models.InterfaceStatusRecord)
		if !ok {
			continue
		}

		byKey[models.InterfaceKey(st.InterfaceName)] = st
	}

	return byKey
}

// aclBindings merges static and dynamic ACL bindings per interface.
func (s *ClientCollectionService) aclBindings(
	ctx context.Context,
	deviceType models.DeviceType,
	vars map[string]string,
	hostname string,
) map[string][]string {
	byKey := make(map[string][]string)

	for _, apiName := range []string{models.APIStaticACL, models.APIDynamicACL} {
		for _, item := range s.fetchParsed(ctx, apiName, deviceType, vars, hostname) {
			binding, ok := item.(models.AclBindingRecord)
			if !ok {
				continue
			}

			key := models.InterfaceKey(binding.InterfaceName)
			byKey[key] = append(byKey[key], binding.ACLName+" "+binding.Direction)
		}
	}

	return byKey
}

// pingResults maps probed client IPs to reachability.
func (s *ClientCollectionService) pingResults(
	ctx context.Context,
	deviceType models.DeviceType,
	vars map[string]string,
	hostname string,
) map[string]bool {
	byIP := make(map[string]bool)

	for _, item := range s.fetchParsed(ctx, models.APIPingBatch, deviceType, vars, hostname) {
		probe, ok := item.(models.PingRecord)
		if !ok {
			continue
		}

		byIP[probe.IPAddress] = probe.Reachable
	}

	return byIP
}

func (s *ClientCollectionService) fetchParsed(
	ctx context.Context,
	apiName string,
	deviceType models.DeviceType,
	vars map[string]string,
	hostname string,
) []models.Record {
	body, err := s.fetch.Fetch(ctx, apiName, vars, nil)
	if err != nil {
		s.runner.logger.Warn().
			Err(err).
			Str("api_name", apiName).
			Str("hostname", hostname).
			Msg("join input unavailable")

		return nil
	}

	p, err := parser.GetOrError(deviceType, apiName)
	if err != nil {
		return nil
	}

	return p.Parse(body)
}

func macTableAPIName(deviceType models.DeviceType) (string, bool) {
	switch deviceType {
	case models.DeviceTypeHPE:
		return models.APIMacTableHPE, true
	case models.DeviceTypeCiscoIOS:
		return models.APIMacTableIOS, true
	case models.DeviceTypeCiscoNXOS:
		return models.APIMacTableNXOS, true
	default:
		return "", false
	}
}

func interfaceStatusAPIName(deviceType models.DeviceType) (string, bool) {
	switch deviceType {
	case models.DeviceTypeHPE:
		return models.APIInterfaceStatusHPE, true
	case models.DeviceTypeCiscoIOS:
		return models.APIInterfaceStatusIOS, true
	case models.DeviceTypeCiscoNXOS:
		return models.APIInterfaceStatusNXOS, true
	default:
		return "", false
	}
}
