// Package queries defines the registered warehouse queries behind
// each dashboard page.
//
// Every query goes through the registry so a page/filter combination
// always maps to one exact SQL text. Filter values come from bounded
// dropdown sets; free-text input is hashed into the key rather than
// embedded raw, keeping registry cardinality bounded.
package queries

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/snowcore/sourcing-assistant/internal/registry"
)

// Landing returns the query batch for the overview (VP) page.
func Landing(r *registry.Registry) map[string]string {
	return map[string]string{
		"kpis": r.MustRegister(
			"landing_kpis",
			`SELECT
				COUNT(DISTINCT global_id) AS total_skus,
				SUM(CASE WHEN is_duplicate THEN 1 ELSE 0 END) AS duplicate_count,
				COUNT(DISTINCT supplier_id) AS supplier_count,
				SUM(CASE WHEN compliance_status LIKE '%FDA%' THEN 1 ELSE 0 END) AS fda_count,
				SUM(total_spend) AS total_spend,
				SUM(inventory_value) AS inventory_value
			FROM parts_analytics`,
			"Overview KPIs for landing page",
		),
		"sankey": r.MustRegister(
			"landing_sankey",
			`SELECT source_system, business_unit, part_category, COUNT(*) AS part_count
			FROM part_master
			GROUP BY source_system, business_unit, part_category`,
			"Data for Sankey diagram",
		),
		"savings": r.MustRegister(
			"landing_savings",
			`SELECT
				SUM(projected_savings) AS total_potential_savings,
				COUNT(*) AS scenario_count
			FROM consolidation_scenarios`,
			"Consolidation savings potential",
		),
		"bu_breakdown": r.MustRegister(
			"landing_bu_breakdown",
			`SELECT
				business_unit,
				COUNT(DISTINCT global_id) AS sku_count,
				SUM(total_spend) AS total_spend,
				SUM(inventory_value) AS inventory_value,
				SUM(CASE WHEN is_duplicate THEN 1 ELSE 0 END) AS duplicate_count
			FROM parts_analytics
			GROUP BY business_unit`,
			"Breakdown by business unit",
		),
		"category_breakdown": r.MustRegister(
			"landing_category_breakdown",
			`SELECT
				part_category,
				COUNT(DISTINCT global_id) AS sku_count,
				SUM(total_spend) AS total_spend,
				AVG(unit_cost) AS avg_unit_cost
			FROM parts_analytics
			GROUP BY part_category
			ORDER BY total_spend DESC`,
			"Breakdown by part category",
		),
		"compliance_breakdown": r.MustRegister(
			"landing_compliance_breakdown",
			`SELECT compliance_status, COUNT(DISTINCT global_id) AS sku_count
			FROM parts_analytics
			GROUP BY compliance_status`,
			"Breakdown by compliance status",
		),
		"region_breakdown": r.MustRegister(
			"landing_region_breakdown",
			`SELECT
				supplier_region,
				COUNT(DISTINCT supplier_id) AS supplier_count,
				SUM(total_spend) AS total_spend
			FROM parts_analytics
			GROUP BY supplier_region`,
			"Breakdown by supplier region",
		),
	}
}

// SupplyChain returns the query batch for the supply-chain tower
// page, optionally scoped to one business unit.
func SupplyChain(r *registry.Registry, businessUnit string) map[string]string {
	buFilter := ""
	if businessUnit != "" && businessUnit != "All" {
		buFilter = fmt.Sprintf("WHERE business_unit = '%s'", escape(businessUnit))
	}
	keyPart := keySegment(businessUnit)

	return map[string]string{
		"kpis": r.MustRegister(
			"supply_kpis_"+keyPart,
			fmt.Sprintf(`SELECT
				SUM(total_spend) AS total_spend,
				SUM(inventory_value) AS total_inventory_value,
				SUM(CASE WHEN is_duplicate THEN inventory_value ELSE 0 END) AS duplicate_inventory_value,
				COUNT(DISTINCT global_id) AS total_skus,
				SUM(CASE WHEN is_duplicate THEN 1 ELSE 0 END) AS duplicate_skus,
				SUM(CASE WHEN compliance_status LIKE '%%FDA%%' THEN 1 ELSE 0 END) AS fda_compliant_count,
				COUNT(DISTINCT supplier_id) AS supplier_count
			FROM parts_analytics
			%s`, buFilter),
			fmt.Sprintf("Primary KPI metrics for %s", orAll(businessUnit)),
		),
		"consolidation_scenarios": r.MustRegister(
			"supply_consolidation_scenarios",
			`SELECT
				c.scenario_id,
				c.scenario_name,
				c.source_suppliers,
				c.target_supplier,
				s.supplier_name AS target_supplier_name,
				c.parts_affected,
				c.projected_savings,
				c.implementation_cost,
				c.roi_pct,
				c.projected_savings - c.implementation_cost AS net_benefit,
				c.status,
				COALESCE(r.composite_risk, 0.5) AS target_risk
			FROM consolidation_scenarios c
			LEFT JOIN supplier_master s ON c.target_supplier = s.supplier_id
			LEFT JOIN supplier_risk_scores r ON c.target_supplier = r.supplier_id`,
			"Consolidation scenarios with target supplier risk",
		),
		"supplier_risk": r.MustRegister(
			"supply_supplier_risk",
			`SELECT
				s.supplier_id,
				s.supplier_name,
				s.supplier_region,
				s.tier,
				s.annual_spend,
				COALESCE(r.financial_risk, 0.5) AS financial_risk,
				COALESCE(r.delivery_risk, 0.5) AS delivery_risk,
				COALESCE(r.quality_risk, 0.5) AS quality_risk,
				COALESCE(r.composite_risk, 0.5) AS composite_risk,
				COALESCE(r.supply_continuity, 0.5) AS supply_continuity,
				COUNT(DISTINCT p.global_id) AS part_count
			FROM supplier_master s
			LEFT JOIN supplier_risk_scores r ON s.supplier_id = r.supplier_id
			LEFT JOIN parts_analytics p ON s.supplier_id = p.supplier_id
			GROUP BY s.supplier_id, s.supplier_name, s.supplier_region, s.tier,
				s.annual_spend, r.financial_risk, r.delivery_risk, r.quality_risk,
				r.composite_risk, r.supply_continuity`,
			"Supplier risk matrix",
		),
		"supplier_network": r.MustRegister(
			"supply_supplier_network_"+keyPart,
			fmt.Sprintf(`SELECT
				s.supplier_name,
				p.supplier_region,
				p.business_unit,
				s.tier,
				COUNT(DISTINCT p.global_id) AS part_count,
				SUM(p.inventory_value) AS inventory_value
			FROM parts_analytics p
			JOIN supplier_master s ON p.supplier_id = s.supplier_id
			%s
			GROUP BY s.supplier_name, p.supplier_region, p.business_unit, s.tier`, buFilter),
			"Supplier network data for visualization",
		),
	}
}

// Procurement returns the query batch for the procurement-ops page,
// optionally scoped to one part category.
func Procurement(r *registry.Registry, category string) map[string]string {
	poWhere := ""
	if category != "" && category != "All" {
		poWhere = fmt.Sprintf("WHERE part_category = '%s'", escape(category))
	}
	keyPart := keySegment(category)

	anomalyWhere := "WHERE"
	if poWhere != "" {
		anomalyWhere = poWhere + " AND"
	}

	return map[string]string{
		"maverick_kpi": r.MustRegister(
			"maverick_kpi_"+keyPart,
			fmt.Sprintf(`SELECT
				SUM(total_amount) AS total_spend,
				SUM(CASE WHEN NOT on_contract THEN total_amount ELSE 0 END) AS maverick_spend,
				COUNT(*) AS total_orders,
				SUM(CASE WHEN NOT on_contract THEN 1 ELSE 0 END) AS maverick_orders
			FROM purchase_orders
			%s`, poWhere),
			"Maverick spend KPIs",
		),
		"maverick_by_supplier": r.MustRegister(
			"maverick_by_supplier_"+keyPart,
			fmt.Sprintf(`SELECT
				s.supplier_name,
				s.tier,
				SUM(po.total_amount) AS total_spend,
				SUM(CASE WHEN NOT po.on_contract THEN po.total_amount ELSE 0 END) AS maverick_spend,
				ROUND(SUM(CASE WHEN NOT po.on_contract THEN po.total_amount ELSE 0 END) /
					NULLIF(SUM(po.total_amount), 0) * 100, 1) AS maverick_pct,
				COUNT(*) AS order_count
			FROM purchase_orders po
			JOIN supplier_master s ON po.supplier_id = s.supplier_id
			%s
			GROUP BY s.supplier_name, s.tier
			HAVING SUM(po.total_amount) > 0
			ORDER BY maverick_spend DESC
			LIMIT 15`, poWhere),
			"Maverick spend by supplier",
		),
		"price_anomalies": r.MustRegister(
			"price_anomalies_"+keyPart,
			fmt.Sprintf(`SELECT
				po.po_id,
				po.part_category,
				s.supplier_name,
				po.unit_price,
				po.benchmark_price,
				ROUND((po.unit_price - po.benchmark_price) / po.benchmark_price * 100, 1) AS price_variance_pct,
				po.total_amount
			FROM purchase_orders po
			JOIN supplier_master s ON po.supplier_id = s.supplier_id
			%s (po.unit_price - po.benchmark_price) / po.benchmark_price * 100 > 15
			ORDER BY price_variance_pct DESC
			LIMIT 20`, anomalyWhere),
			"Price anomalies above benchmark",
		),
		"supplier_scorecard": r.MustRegister(
			"supplier_scorecard",
			`SELECT
				s.supplier_name,
				s.tier,
				s.rating,
				s.lead_time_days,
				COALESCE(r.composite_risk, 0.5) AS composite_risk,
				COALESCE(r.supply_continuity, 0.5) AS supply_continuity,
				COUNT(DISTINCT p.global_id) AS part_count,
				SUM(p.inventory_value) AS total_inventory_value,
				SUM(CASE WHEN p.compliance_status LIKE '%FDA%' THEN 1 ELSE 0 END) AS fda_compliant_parts,
				s.quality_cert
			FROM supplier_master s
			LEFT JOIN supplier_risk_scores r ON s.supplier_id = r.supplier_id
			LEFT JOIN parts_analytics p ON s.supplier_id = p.supplier_id
			GROUP BY s.supplier_name, s.tier, s.rating, s.lead_time_days,
				r.composite_risk, r.supply_continuity, s.quality_cert
			ORDER BY composite_risk ASC`,
			"Supplier scorecard with risk metrics",
		),
	}
}

// Analyst returns the golden query for a free-text analyst prompt,
// falling back to the default inventory rollup.
func Analyst(r *registry.Registry, prompt string) string {
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "inventory value") && strings.Contains(lower, "stainless") {
		return r.MustRegister(
			"analyst_inventory_value",
			`SELECT business_unit, SUM(inventory_value) AS total_inv_value
			FROM parts_analytics
			WHERE is_duplicate AND material = 'Stainless Steel'
			GROUP BY business_unit`,
			"Golden query for inventory value of duplicate stainless parts",
		)
	}

	return r.MustRegister(
		"analyst_default",
		`SELECT business_unit, SUM(inventory_value) AS inventory_value
		FROM parts_analytics
		GROUP BY business_unit`,
		"Fallback analyst query for inventory value by business unit",
	)
}

// SearchDocs returns a registered full-text lookup over engineering
// docs. The free-text query is hashed into the registry key so raw
// user input never becomes a key.
func SearchDocs(r *registry.Registry, query string, topK int) string {
	if topK <= 0 {
		topK = 3
	}
	safe := escape(strings.TrimSpace(query))

	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d", safe, topK)

	return r.MustRegister(
		fmt.Sprintf("doc_search_%x", h.Sum64()),
		fmt.Sprintf(`SELECT doc_id, part_category, standard, content, doc_path
			FROM engineering_docs
			WHERE content LIKE '%%%s%%' OR standard LIKE '%%%s%%' OR part_category LIKE '%%%s%%'
			LIMIT %d`, safe, safe, safe, topK),
		"Document search over engineering docs",
	)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// keySegment derives the registry key segment for a filter value. The
// unfiltered variants share one segment; any other value is hashed, so
// filters that differ at all (including only in case or spacing) never
// rebind an existing key to different SQL.
func keySegment(filter string) string {
	if filter == "" || filter == "All" {
		return "all"
	}
	h := fnv.New64a()
	h.Write([]byte(filter))
	return fmt.Sprintf("%x", h.Sum64())
}

func orAll(filter string) string {
	if filter == "" || filter == "All" {
		return "All"
	}
	return filter
}
