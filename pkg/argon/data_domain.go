// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"fmt"
	"strings"

	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

const dataDomainPallet = "DataDomain"

// DataDomain module errors.
const (
	DataDomainErrorDomainNotRegistered         = "DomainNotRegistered"
	DataDomainErrorNotDomainOwner              = "NotDomainOwner"
	DataDomainErrorFailedToAddToAddressHistory = "FailedToAddToAddressHistory"
	DataDomainErrorFailedToAddExpiringDomain   = "FailedToAddExpiringDomain"
	DataDomainErrorAccountDecodingError        = "AccountDecodingError"
)

// DataTLD is the top level domain of a data domain.
type DataTLD uint8

// Top level domains.
const (
	DataTLDAnalytics DataTLD = iota
	DataTLDAutomotive
	DataTLDBikes
	DataTLDBusiness
	DataTLDCars
	DataTLDCommunication
	DataTLDEntertainment
	DataTLDFinance
	DataTLDFlights
	DataTLDHealth
	DataTLDHotels
	DataTLDJobs
	DataTLDNews
	DataTLDRestaurants
	DataTLDSearch
	DataTLDShopping
	DataTLDSocial
	DataTLDSports
	DataTLDTravel
	DataTLDWeather
)

var dataTLDNames = [...]string{
	"analytics", "automotive", "bikes", "business", "cars", "communication",
	"entertainment", "finance", "flights", "health", "hotels", "jobs", "news",
	"restaurants", "search", "shopping", "social", "sports", "travel", "weather",
}

func (t DataTLD) String() string {
	if int(t) >= len(dataTLDNames) {
		return "unknown"
	}
	return dataTLDNames[t]
}

// DataDomain is a registered domain name under a top level domain.
type DataDomain struct {
	DomainName     string
	TopLevelDomain DataTLD
}

// ParseDataDomain parses a domain such as "example.flights".
func ParseDataDomain(domain string) (DataDomain, error) {
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return DataDomain{}, fmt.Errorf("%w: %q", ErrInvalidDataDomain, domain)
	}

	name, tld := domain[:dot], strings.ToLower(domain[dot+1:])
	for i, tldName := range dataTLDNames {
		if tldName == tld {
			return DataDomain{DomainName: strings.ToLower(name), TopLevelDomain: DataTLD(i)}, nil
		}
	}
	return DataDomain{}, fmt.Errorf("%w: unknown top level domain %q", ErrInvalidDataDomain, tld)
}

func (d DataDomain) String() string {
	return d.DomainName + "." + d.TopLevelDomain.String()
}

// Hash returns the domain hash keying the DataDomain storage.
func (d DataDomain) Hash() common.Hash {
	return common.MustBlake2bHash(scale.MustMarshal(d))
}

// Semver is the version of a zone record entry.
type Semver struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// VersionHost is the datastore serving a version of a domain.
type VersionHost struct {
	DatastoreID string
	Host        string
}

// ZoneVersion maps a version to its host.
type ZoneVersion struct {
	Version Semver
	Host    VersionHost
}

// ZoneRecord is where the versions of a data domain are served.
type ZoneRecord struct {
	PaymentAccount AccountID
	NotaryID       NotaryID
	Versions       []ZoneVersion
}

// DataDomainRegistration is the owner of a registered domain.
type DataDomainRegistration struct {
	AccountID        AccountID
	RegisteredAtTick Tick
}

type dataDomainEvent struct{}

func (dataDomainEvent) PalletName() string { return dataDomainPallet }

type ZoneRecordUpdated struct {
	dataDomainEvent
	DomainHash common.Hash
	ZoneRecord ZoneRecord
}

func (ZoneRecordUpdated) EventName() string { return "ZoneRecordUpdated" }

// DataDomainRegistered is emitted when a notebook registers a domain.
type DataDomainRegistered struct {
	dataDomainEvent
	DomainHash   common.Hash
	Registration DataDomainRegistration
}

func (DataDomainRegistered) EventName() string { return "DataDomainRegistered" }

type DataDomainRenewed struct {
	dataDomainEvent
	DomainHash common.Hash
}

func (DataDomainRenewed) EventName() string { return "DataDomainRenewed" }

type DataDomainExpired struct {
	dataDomainEvent
	DomainHash common.Hash
}

func (DataDomainExpired) EventName() string { return "DataDomainExpired" }

func registerDataDomainEvents(r *chain.EventRegistry) {
	r.Register("ZoneRecordUpdated(domain_hash:H256,zone_record:ZoneRecord<AccountId32>)",
		func() chain.Event { return &ZoneRecordUpdated{} })
	r.Register("DataDomainRegistered(domain_hash:H256,registration:DataDomainRegistration<AccountId32>)",
		func() chain.Event { return &DataDomainRegistered{} })
	r.Register("DataDomainRenewed(domain_hash:H256)",
		func() chain.Event { return &DataDomainRenewed{} })
	r.Register("DataDomainExpired(domain_hash:H256)",
		func() chain.Event { return &DataDomainExpired{} })
}

// DataDomainTx builds DataDomain calls.
type DataDomainTx struct{}

// SetZoneRecord sets the zone record of a domain owned by the sender.
func (DataDomainTx) SetZoneRecord(domainHash common.Hash, record ZoneRecord) *chain.Payload {
	args := struct {
		DomainHash common.Hash
		ZoneRecord ZoneRecord
	}{domainHash, record}
	return chain.NewPayload(dataDomainPallet, "set_zone_record", args,
		"set_zone_record(domain_hash:H256,zone_record:ZoneRecord<AccountId32>)")
}

// DataDomainStorage addresses DataDomain storage.
type DataDomainStorage struct{}

const (
	registeredDataDomainsSignature = "RegisteredDataDomains[Blake2_128Concat(H256)]->" +
		"DataDomainRegistration<AccountId32>"
	zoneRecordsSignature = "ZoneRecordsByDomain[Blake2_128Concat(H256)]->ZoneRecord<AccountId32>"
)

// RegisteredDataDomains is the registration of the domain hash.
func (DataDomainStorage) RegisteredDataDomains(domainHash common.Hash) *chain.StorageAddress[DataDomainRegistration] {
	return chain.NewStorageAddress[DataDomainRegistration](dataDomainPallet, "RegisteredDataDomains",
		blake2Concat, registeredDataDomainsSignature, domainHash)
}

func (DataDomainStorage) RegisteredDataDomainsIter() *chain.StorageAddress[DataDomainRegistration] {
	return chain.NewStorageAddress[DataDomainRegistration](dataDomainPallet, "RegisteredDataDomains",
		blake2Concat, registeredDataDomainsSignature)
}

func (DataDomainStorage) ZoneRecordsByDomain(domainHash common.Hash) *chain.StorageAddress[ZoneRecord] {
	return chain.NewStorageAddress[ZoneRecord](dataDomainPallet, "ZoneRecordsByDomain", blake2Concat,
		zoneRecordsSignature, domainHash)
}

func (DataDomainStorage) ZoneRecordsByDomainIter() *chain.StorageAddress[ZoneRecord] {
	return chain.NewStorageAddress[ZoneRecord](dataDomainPallet, "ZoneRecordsByDomain", blake2Concat,
		zoneRecordsSignature)
}

// ExpiringDomainsByBlock are the domains expiring at the tick.
func (DataDomainStorage) ExpiringDomainsByBlock(tick Tick) *chain.StorageAddress[[]common.Hash] {
	return chain.NewStorageAddress[[]common.Hash](dataDomainPallet, "ExpiringDomainsByBlock", twox64Concat,
		"ExpiringDomainsByBlock[Twox64Concat(u64)]->BoundedVec<H256>", tick)
}

func (DataDomainStorage) ExpiringDomainsByBlockIter() *chain.StorageAddress[[]common.Hash] {
	return chain.NewStorageAddress[[]common.Hash](dataDomainPallet, "ExpiringDomainsByBlock", twox64Concat,
		"ExpiringDomainsByBlock[Twox64Concat(u64)]->BoundedVec<H256>")
}

// DataDomainConstants addresses DataDomain constants.
type DataDomainConstants struct{}

// DomainExpirationTicks is how long a registration lasts without renewal.
func (DataDomainConstants) DomainExpirationTicks() *chain.ConstantAddress[Tick] {
	return chain.NewConstantAddress[Tick](dataDomainPallet, "DomainExpirationTicks", "DomainExpirationTicks:u64")
}

func (DataDomainConstants) MaxDomainsPerBlock() *chain.ConstantAddress[uint32] {
	return chain.NewConstantAddress[uint32](dataDomainPallet, "MaxDomainsPerBlock", "MaxDomainsPerBlock:u32")
}

func dataDomainBindings() []chain.Binding {
	storage, constants := DataDomainStorage{}, DataDomainConstants{}
	return []chain.Binding{
		DataDomainTx{}.SetZoneRecord(common.Hash{}, ZoneRecord{}),
		storage.RegisteredDataDomainsIter(),
		storage.ZoneRecordsByDomainIter(),
		storage.ExpiringDomainsByBlockIter(),
		constants.DomainExpirationTicks(),
		constants.MaxDomainsPerBlock(),
	}
}
