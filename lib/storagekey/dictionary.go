// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storagekey

import (
	"encoding/hex"

	"github.com/ChainSafe/ssi/lib/common"
)

var palletNames = [...]string{
	"System", "Timestamp", "Balances", "TransactionPayment", "Sudo",
	"Babe", "Aura", "Grandpa", "Beefy", "Mmr", "Session", "Historical",
	"Authorship", "ImOnline", "AuthorityDiscovery", "Offences",
	"Staking", "VoterList", "NominationPools", "FastUnstake",
	"ElectionProviderMultiPhase", "Indices", "Democracy", "Council",
	"TechnicalCommittee", "TechnicalMembership", "Elections",
	"PhragmenElection", "Treasury", "Bounties", "ChildBounties", "Tips",
	"Referenda", "ConvictionVoting", "Whitelist", "Vesting", "Identity",
	"Proxy", "Multisig", "Scheduler", "Preimage", "Utility", "Recovery",
	"Society", "Lottery", "Assets", "Uniques", "Nfts", "Contracts",
	"RandomnessCollectiveFlip", "Substrate", "ParachainSystem",
	"ParachainInfo", "XcmpQueue", "DmpQueue", "PolkadotXcm", "XcmPallet",
	"CumulusXcm", "Configuration", "ParasShared", "ParaInclusion",
	"ParaInherent", "ParaScheduler", "Paras", "Initializer", "Dmp", "Ump",
	"Hrmp", "ParaSessionInfo", "ParasDisputes", "Registrar", "Slots",
	"Auctions", "Crowdloan", "Claims", "Collective", "Evm", "Ethereum",
}

var fieldNames = [...]string{
	// System
	"Account", "ExtrinsicCount", "BlockWeight", "AllExtrinsicsLen",
	"BlockHash", "ExtrinsicData", "Number", "ParentHash", "Digest",
	"Events", "EventCount", "EventTopics", "LastRuntimeUpgrade",
	"UpgradedToDualRefCount", "UpgradedToU32RefCount", "UpgradedToTripleRefCount",
	"ExecutionPhase",
	"AuthorizedUpgrade",
	// Timestamp
	"Now", "DidUpdate",
	// Balances
	"TotalIssuance", "InactiveIssuance", "Locks", "Reserves", "Holds",
	"Freezes",
	// Babe, Aura and Grandpa
	"Authorities", "NextAuthorities", "EpochIndex", "CurrentSlot",
	"GenesisSlot", "Randomness", "NextRandomness", "PendingEpochConfigChange",
	"SegmentIndex", "UnderConstruction", "Initialized",
	"AuthorVrfRandomness", "EpochStart", "Lateness", "EpochConfig",
	"NextEpochConfig", "SkippedEpochs", "State", "PendingChange",
	"NextForced", "Stalled", "CurrentSetId", "SetIdSession",
	// Session
	"Validators", "CurrentIndex", "QueuedChanged", "QueuedKeys",
	"DisabledValidators", "NextKeys", "KeyOwner",
	// Sudo and TransactionPayment
	"Key", "NextFeeMultiplier", "StorageVersion",
	// Authorship and ImOnline
	"Author", "Uncles", "HeartbeatAfter", "Keys", "ReceivedHeartbeats",
	"AuthoredBlocks",
	// Staking
	"Bonded", "Ledger", "Payee", "Nominators", "ValidatorCount",
	"MinimumValidatorCount", "Invulnerables", "ErasStakers",
	"ErasStakersClipped", "ErasValidatorPrefs", "ErasValidatorReward",
	"ErasRewardPoints", "ErasTotalStake", "ActiveEra", "CurrentEra",
	"ErasStartSessionIndex", "ForceEra", "SlashRewardFraction",
	"CanceledSlashPayout", "UnappliedSlashes", "BondedEras",
	"MinNominatorBond", "MinValidatorBond", "CounterForValidators",
	"CounterForNominators", "MaxValidatorsCount", "MaxNominatorsCount",
	"HistoryDepth",
	// Governance
	"PublicPropCount", "PublicProps", "DepositOf", "ReferendumCount",
	"LowestUnbaked", "ReferendumInfoFor", "VotingOf", "Blacklist",
	"Cancellations", "Proposals", "ProposalOf", "Voting", "ProposalCount",
	"Members", "Prime", "RunnersUp", "Candidates", "ElectionRounds",
	"Approvals", "Deactivated", "BountyCount", "BountyDescriptions",
	// Utility pallets
	"Agenda", "Lookup", "IncompleteSince", "StatusFor", "PreimageFor",
	"Accounts", "IdentityOf", "SuperOf", "SubsOf", "Proxies",
	"Announcements", "Multisigs", "Vesting",
	// Assets and contracts
	"Asset", "Metadata", "Approval", "CodeStorage", "PristineCode",
	"OwnerInfoOf", "ContractInfoOf", "Nonce",
	// Parachains
	"ValidationData", "PendingValidationCode", "RelayStateProof",
	"HostConfiguration", "LastDmqMqcHead", "LastHrmpMqcHeads",
	"ActiveConfig", "PendingConfigs", "Heads", "CurrentCodeHash",
	"Parachains", "ParaLifecycles", "ActiveValidatorIndices",
	"ActiveValidatorKeys", "AvailabilityBitfields", "PendingAvailability",
	"ValidatorGroups", "AvailabilityCores", "SessionStartBlock",
	"DownwardMessageQueues", "HrmpChannels", "NextFreeParaId",
	"Leases", "Funds",
}

// devAccountNames maps the hex encoded public keys of the
// sr25519 development accounts to their names.
var devAccountNames = map[string]string{
	"d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d": "Alice",
	"8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48": "Bob",
	"90b5ab205c6974c9ea841be688864633dc9ca8a357843eeacf2314649965fe22": "Charlie",
	"306721211d5404bd9da88e0204360a1a9ab8b87c66c1bc2fcdd37f3c2222cc20": "Dave",
	"e659a7a1628cdd93febc04a4e0646ea20e9f5f0ce097d9a05290d4a9e054df4e": "Eve",
	"1cbd2d43530a44705ad088af313e18f80b53ef16b36177cd4b77b846f2a5f07c": "Ferdie",
}

// wellKnownKeys are raw, unhashed keys of the main trie.
var wellKnownKeys = [...][]byte{
	common.CodeKey,
	common.HeapPagesKey,
	common.ExtrinsicIndexKey,
	common.IntraBlockEntropyKey,
}

// Reverse dictionaries keyed by lower case hex digests.
// They are only written by the init function.
var (
	// palletNamesByHash maps twox128 pallet name digests to names.
	palletNamesByHash map[string]string
	// fieldNamesByHash maps twox128 field name digests to names.
	fieldNamesByHash map[string]string
	// twoxNames maps twox128 digests of every known name to it.
	twoxNames map[string]string
	// blake2Names maps blake2_128 digests of known names
	// and development account ids to names.
	blake2Names map[string]string
)

func init() {
	palletNamesByHash = make(map[string]string, len(palletNames))
	fieldNamesByHash = make(map[string]string, len(fieldNames))
	twoxNames = make(map[string]string, len(palletNames)+len(fieldNames))
	blake2Names = make(map[string]string,
		len(palletNames)+len(fieldNames)+len(devAccountNames))

	for _, name := range palletNames {
		digest := ConcatEncode(Twox128, name)
		palletNamesByHash[digest] = name
		twoxNames[digest] = name
		blake2Names[ConcatEncode(Blake2_128, name)] = name
	}

	for _, name := range fieldNames {
		digest := ConcatEncode(Twox128, name)
		fieldNamesByHash[digest] = name
		twoxNames[digest] = name
		blake2Names[ConcatEncode(Blake2_128, name)] = name
	}

	for publicKeyHex, name := range devAccountNames {
		publicKey, err := hex.DecodeString(publicKeyHex)
		if err != nil {
			panic(err)
		}
		digest := hex.EncodeToString(Blake2_128.Hash(publicKey))
		blake2Names[digest] = name
	}
}
