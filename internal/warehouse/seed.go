package warehouse

import (
	"fmt"
	"math/rand"
	"time"
)

// The seed is deterministic so dashboards and tests see the same
// numbers on every fresh database.
const seedRandSource = 42

type supplierSeed struct {
	id, name, region    string
	rating              float64
	leadTimeDays        int
	preferred           bool
	annualSpend         float64
	tier, contractEnd   string
	qualityCert         string
}

var supplierSeeds = []supplierSeed{
	{"SUP001", "Arctic Components", "NA", 4.6, 12, true, 1850000.50, "Preferred", "2027-06-30", "ISO 9001"},
	{"SUP002", "BioFlux Precision", "EU", 4.2, 18, false, 980000.00, "Approved", "2026-12-31", "ISO 13485"},
	{"SUP003", "Helios Fasteners", "APAC", 4.1, 22, false, 410000.75, "Conditional", "2026-03-31", "ISO 9001"},
	{"SUP004", "Northwind Metals", "NA", 4.8, 10, true, 2250000.10, "Preferred", "2028-01-15", "ISO 9001"},
	{"SUP005", "Orchid Motion", "EU", 3.9, 28, false, 620000.90, "Conditional", "2026-06-30", ""},
	{"SUP006", "Quanta Actuators", "NA", 4.3, 16, true, 1340000.00, "Preferred", "2027-09-30", "ISO 13485"},
	{"SUP007", "Regulus BioFab", "EU", 4.0, 20, false, 540000.40, "Approved", "2026-11-30", "ISO 13485"},
	{"SUP008", "Sierra Microdrive", "APAC", 4.5, 14, true, 1120000.30, "Preferred", "2027-04-15", "ISO 9001"},
	{"SUP009", "Titan Forge", "NA", 4.7, 11, true, 2055000.20, "Preferred", "2028-03-31", "ISO 9001"},
	{"SUP010", "Umberline Tech", "EU", 3.8, 30, false, 380000.00, "Conditional", "2026-02-28", ""},
	{"SUP011", "Vector Valveworks", "NA", 4.4, 15, true, 960000.00, "Approved", "2027-07-31", "ISO 13485"},
	{"SUP012", "Willowridge Polymers", "APAC", 4.1, 19, false, 470000.55, "Approved", "2026-08-31", "ISO 9001"},
}

// supplier_id, financial, delivery, quality, composite, continuity
var riskSeeds = [][6]any{
	{"SUP001", 0.15, 0.12, 0.10, 0.12, 0.92},
	{"SUP002", 0.25, 0.22, 0.18, 0.22, 0.85},
	{"SUP003", 0.45, 0.38, 0.35, 0.39, 0.68},
	{"SUP004", 0.10, 0.08, 0.12, 0.10, 0.95},
	{"SUP005", 0.55, 0.48, 0.42, 0.48, 0.58},
	{"SUP006", 0.18, 0.15, 0.14, 0.16, 0.90},
	{"SUP007", 0.30, 0.28, 0.22, 0.27, 0.80},
	{"SUP008", 0.12, 0.14, 0.10, 0.12, 0.93},
	{"SUP009", 0.08, 0.10, 0.08, 0.09, 0.96},
	{"SUP010", 0.62, 0.55, 0.50, 0.56, 0.52},
	{"SUP011", 0.20, 0.18, 0.16, 0.18, 0.88},
	{"SUP012", 0.32, 0.30, 0.28, 0.30, 0.78},
}

type scenarioSeed struct {
	id, name, sources, target       string
	partsAffected                   int
	projectedSavings, implCost, roi float64
	status                          string
}

var scenarioSeeds = []scenarioSeed{
	{"CONS001", "NA Fastener Consolidation", `["SUP003","SUP010"]`, "SUP001", 145, 285000.00, 45000.00, 533.33, "proposed"},
	{"CONS002", "EU BioTech Supplier Merge", `["SUP005","SUP007"]`, "SUP002", 89, 178000.00, 32000.00, 456.25, "approved"},
	{"CONS003", "APAC Motor Standardization", `["SUP003","SUP012"]`, "SUP008", 112, 156000.00, 28000.00, 457.14, "in_progress"},
	{"CONS004", "Premium Valve Consolidation", `["SUP005","SUP010"]`, "SUP011", 67, 198000.00, 55000.00, 260.00, "proposed"},
	{"CONS005", "Industrial Metals Optimization", `["SUP003"]`, "SUP004", 234, 312000.00, 62000.00, 403.23, "completed"},
	{"CONS006", "Cross-BU Actuator Alliance", `["SUP005","SUP007","SUP010"]`, "SUP006", 156, 425000.00, 85000.00, 400.00, "proposed"},
}

type docSeed struct {
	id, category, standard, content, path string
}

var docSeeds = []docSeed{
	{"DOC001", "Valve", "ISO 13485",
		"Valve assemblies must meet ISO 13485 traceability and include lot-level material certification and sterilization verification.",
		"docs/iso_13485_valves.md"},
	{"DOC002", "Actuator", "21 CFR Part 11",
		"Actuator compliance requires audit trails for firmware updates, electronic signatures, and verification of access controls for calibration routines.",
		"docs/21cfr_part11_actuators.md"},
	{"DOC003", "Motor", "ISO 9001",
		"Motor assemblies must document torque testing procedures and retain calibration records for five years in accordance with ISO 9001.",
		"docs/iso_9001_motors.md"},
	{"DOC004", "Valve", "ISO 14971",
		"Risk management files shall document valve failure modes, hazard analysis, and mitigation steps per ISO 14971.",
		"docs/iso_14971_valves.md"},
}

var (
	partCategories   = []string{"Valve", "Motor", "Fastener", "Actuator", "Sensor", "Pump"}
	materials        = []string{"Stainless Steel", "Aluminum", "Polymer", "Titanium", "Brass"}
	businessUnits    = []string{"Snowcore Industrial", "Snowcore Energy", "BioFlux Automation", "BioFlux Medical"}
	sourceSystems    = []string{"SAP_SNOWCORE", "ORACLE_BIOFLUX"}
	complianceStates = []string{"FDA Approved", "FDA Pending", "ISO Certified", "Not Assessed"}
)

// Seed populates an empty warehouse with the synthetic
// parts-intelligence dataset: supplier master, risk scores,
// consolidation scenarios, engineering docs, a generated part
// population, and a purchase-order history.
func (s *SQLiteStore) Seed(partCount, orderCount int) error {
	rng := rand.New(rand.NewSource(seedRandSource))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, sup := range supplierSeeds {
		var cert any
		if sup.qualityCert != "" {
			cert = sup.qualityCert
		}
		if _, err := tx.Exec(
			`INSERT INTO supplier_master
			 (supplier_id, supplier_name, supplier_region, rating, lead_time_days,
			  is_preferred, annual_spend, tier, contract_end, quality_cert)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sup.id, sup.name, sup.region, sup.rating, sup.leadTimeDays,
			sup.preferred, sup.annualSpend, sup.tier, sup.contractEnd, cert,
		); err != nil {
			return fmt.Errorf("seed supplier %s: %w", sup.id, err)
		}
	}

	for _, r := range riskSeeds {
		if _, err := tx.Exec(
			`INSERT INTO supplier_risk_scores
			 (supplier_id, financial_risk, delivery_risk, quality_risk, composite_risk, supply_continuity)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r[0], r[1], r[2], r[3], r[4], r[5],
		); err != nil {
			return fmt.Errorf("seed risk score %v: %w", r[0], err)
		}
	}

	for _, sc := range scenarioSeeds {
		if _, err := tx.Exec(
			`INSERT INTO consolidation_scenarios
			 (scenario_id, scenario_name, source_suppliers, target_supplier,
			  parts_affected, projected_savings, implementation_cost, roi_pct, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sc.id, sc.name, sc.sources, sc.target,
			sc.partsAffected, sc.projectedSavings, sc.implCost, sc.roi, sc.status,
		); err != nil {
			return fmt.Errorf("seed scenario %s: %w", sc.id, err)
		}
	}

	for _, d := range docSeeds {
		if _, err := tx.Exec(
			`INSERT INTO engineering_docs (doc_id, part_category, standard, content, doc_path)
			 VALUES (?, ?, ?, ?, ?)`,
			d.id, d.category, d.standard, d.content, d.path,
		); err != nil {
			return fmt.Errorf("seed doc %s: %w", d.id, err)
		}
	}

	for i := 0; i < partCount; i++ {
		globalID := fmt.Sprintf("GP-%05d", i+1)
		sup := supplierSeeds[rng.Intn(len(supplierSeeds))]
		category := partCategories[rng.Intn(len(partCategories))]
		bu := businessUnits[rng.Intn(len(businessUnits))]
		source := sourceSystems[rng.Intn(len(sourceSystems))]
		unitCost := 5 + rng.Float64()*495
		totalSpend := unitCost * float64(50+rng.Intn(2000))
		inventoryValue := unitCost * float64(10+rng.Intn(500))
		isDuplicate := rng.Float64() < 0.2
		compliance := complianceStates[rng.Intn(len(complianceStates))]

		if _, err := tx.Exec(
			`INSERT INTO part_master (global_id, source_system, business_unit, part_category)
			 VALUES (?, ?, ?, ?)`,
			globalID, source, bu, category,
		); err != nil {
			return fmt.Errorf("seed part master %s: %w", globalID, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO parts_analytics
			 (global_id, business_unit, part_category, material, supplier_id, supplier_region,
			  unit_cost, total_spend, inventory_value, is_duplicate, compliance_status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			globalID, bu, category, materials[rng.Intn(len(materials))], sup.id, sup.region,
			unitCost, totalSpend, inventoryValue, isDuplicate, compliance,
		); err != nil {
			return fmt.Errorf("seed part %s: %w", globalID, err)
		}
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < orderCount; i++ {
		poID := fmt.Sprintf("PO-%06d", i+1)
		sup := supplierSeeds[rng.Intn(len(supplierSeeds))]
		category := partCategories[rng.Intn(len(partCategories))]
		poDate := start.AddDate(0, 0, rng.Intn(240)).Format("2006-01-02")
		quantity := 1 + rng.Intn(500)
		unitPrice := 5 + rng.Float64()*495
		benchmarkPrice := unitPrice * (0.82 + rng.Float64()*0.18)
		// Non-preferred suppliers carry most of the off-contract spend.
		onContract := rng.Float64() < 0.95
		if !sup.preferred {
			onContract = rng.Float64() < 0.70
		}

		if _, err := tx.Exec(
			`INSERT INTO purchase_orders
			 (po_id, supplier_id, part_category, po_date, quantity, unit_price,
			  benchmark_price, total_amount, on_contract)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			poID, sup.id, category, poDate, quantity, unitPrice,
			benchmarkPrice, unitPrice*float64(quantity), onContract,
		); err != nil {
			return fmt.Errorf("seed purchase order %s: %w", poID, err)
		}
	}

	return tx.Commit()
}
