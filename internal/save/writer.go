package save

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"saveedit/internal/defaults"
	"saveedit/internal/gamefile"
	"saveedit/internal/security"
)

// Writer 对单个槽位执行所有落盘修改。所有路径经 SaveRoot 解析，
// 防止物业类型名或 NPC 名携带路径穿越。
// Writer performs every on-disk mutation for one slot. Paths go through the
// SaveRoot so a property-type or NPC name can never traverse out of the slot.
type Writer struct {
	slot string
	root *security.SaveRoot
}

// NewWriter 创建槽位写入器 / NewWriter creates a writer for one slot folder.
func NewWriter(slotPath string) (*Writer, error) {
	root, err := security.NewSaveRoot(slotPath)
	if err != nil {
		return nil, err
	}
	return &Writer{slot: root.Root(), root: root}, nil
}

// Slot 返回槽位绝对路径 / Slot returns the slot's absolute path.
func (w *Writer) Slot() string { return w.slot }

func (w *Writer) loadMap(rel string) (map[string]any, string, error) {
	path, err := w.root.Resolve(rel)
	if err != nil {
		return nil, "", err
	}
	m, err := gamefile.LoadMap(path)
	if err != nil {
		return nil, "", err
	}
	return m, path, nil
}

// SetMoney 写回 Money.json 的四个余额字段
// SetMoney writes the four balance fields back to Money.json.
func (w *Writer) SetMoney(info MoneyInfo) error {
	m, path, err := w.loadMap("Money.json")
	if err != nil {
		return err
	}
	m["OnlineBalance"] = gamefile.Number(info.OnlineBalance)
	m["Networth"] = gamefile.Number(info.Networth)
	m["LifetimeEarnings"] = gamefile.Number(info.LifetimeEarnings)
	m["WeeklyDepositSum"] = gamefile.Number(info.WeeklyDepositSum)
	return gamefile.SaveMap(path, m)
}

// SetRank 写回 Rank.json / SetRank writes Rank.json back.
func (w *Writer) SetRank(info RankInfo) error {
	m, path, err := w.loadMap("Rank.json")
	if err != nil {
		return err
	}
	m["CurrentRank"] = info.CurrentRank
	m["Rank"] = gamefile.Number(info.Rank)
	m["Tier"] = gamefile.Number(info.Tier)
	return gamefile.SaveMap(path, m)
}

// SetOrganisationName 改写 Game.json 中的组织名
// SetOrganisationName rewrites the organisation name inside Game.json.
func (w *Writer) SetOrganisationName(name string) error {
	m, path, err := w.loadMap("Game.json")
	if err != nil {
		return err
	}
	m["OrganisationName"] = name
	return gamefile.SaveMap(path, m)
}

// UnlockRankProgress 把 Rank/Tier 提到 999，解锁全部物品与种子
// UnlockRankProgress pushes Rank/Tier to 999, unlocking every item and seed.
func (w *Writer) UnlockRankProgress() error {
	m, path, err := w.loadMap("Rank.json")
	if err != nil {
		return err
	}
	m["Rank"] = gamefile.Number(999)
	m["Tier"] = gamefile.Number(999)
	return gamefile.SaveMap(path, m)
}

// UpdateProperties 批量改写物业存储格。propertyType 为 "all" 时遍历所有物业；
// filter 取 both/weed/item；packaging 为 "none" 时不动包装。返回改写的文件数。
// UpdateProperties bulk-edits stored items. "all" covers every property type;
// filter is both/weed/item; packaging "none" leaves packaging untouched. It
// returns the number of Data.json files rewritten.
func (w *Writer) UpdateProperties(propertyType string, quantity int64, packaging, filter, quality string) (int, error) {
	propertiesDir, err := w.root.Resolve("Properties")
	if err != nil {
		return 0, err
	}

	var dirs []string
	if propertyType == "all" {
		entries, err := os.ReadDir(propertiesDir)
		if err != nil {
			return 0, nil
		}
		for _, entry := range entries {
			if entry.IsDir() {
				dirs = append(dirs, filepath.Join(propertiesDir, entry.Name()))
			}
		}
	} else {
		dir, err := w.root.Resolve(filepath.Join("Properties", propertyType))
		if err != nil {
			return 0, err
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}

	updated := 0
	for _, dir := range dirs {
		objectsDir := filepath.Join(dir, "Objects")
		_ = filepath.WalkDir(objectsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || d.Name() != "Data.json" {
				return nil
			}
			if changed, err := updateDataFile(path, quantity, packaging, filter, quality); err == nil && changed {
				updated++
			}
			return nil
		})
	}
	return updated, nil
}

func updateDataFile(path string, quantity int64, packaging, filter, quality string) (bool, error) {
	data, err := gamefile.LoadMap(path)
	if err != nil {
		return false, err
	}
	contents, ok := data["Contents"].(map[string]any)
	if !ok {
		return false, nil
	}
	raw, ok := contents["Items"].([]any)
	if !ok {
		return false, nil
	}

	modified := false
	for i, encoded := range raw {
		s, ok := encoded.(string)
		if !ok {
			continue
		}
		item := map[string]any{}
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			continue
		}
		dataType := gamefile.Str(item, "DataType", "")
		match := filter == "both" ||
			(filter == "weed" && dataType == "WeedData") ||
			(filter == "item" && dataType == "ItemData")
		if !match {
			continue
		}

		item["Quantity"] = quantity
		if dataType == "WeedData" {
			if packaging != "none" {
				item["PackagingID"] = packaging
			}
			item["Quality"] = quality
		}
		out, err := json.Marshal(item)
		if err != nil {
			continue
		}
		raw[i] = string(out)
		modified = true
	}

	if !modified {
		return false, nil
	}
	return true, gamefile.SaveMap(path, data)
}

// CompleteQuests 把 Quests/ 下所有 QuestData 的 State 及目标条目从 0/1 置为 2。
// 返回 (完成的任务数, 完成的目标数)。
// CompleteQuests flips State 0/1 to 2 on every QuestData file under Quests/
// and on each of its Entries. It returns (quests, objectives) completed.
func (w *Writer) CompleteQuests() (int, int, error) {
	questsDir, err := w.root.Resolve("Quests")
	if err != nil {
		return 0, 0, err
	}

	quests, objectives := 0, 0
	_ = filepath.WalkDir(questsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		data, err := gamefile.LoadMap(path)
		if err != nil {
			return nil
		}
		if gamefile.Str(data, "DataType", "") != "QuestData" {
			return nil
		}

		modified := false
		if state := gamefile.Int(data, "State", -1); state == 0 || state == 1 {
			data["State"] = gamefile.Number(2)
			quests++
			modified = true
		}
		if entries, ok := data["Entries"].([]any); ok {
			for _, raw := range entries {
				entry, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				if state := gamefile.Int(entry, "State", -1); state == 0 || state == 1 {
					entry["State"] = gamefile.Number(2)
					objectives++
					modified = true
				}
			}
		}
		if modified {
			_ = gamefile.SaveMap(path, data)
		}
		return nil
	})
	return quests, objectives, nil
}

// ModifyVariables 翻转变量文件："False" 改 "True"，非布尔值改 "999999999"。
// 返回改动的文件数。
// ModifyVariables flips variable files: "False" becomes "True", any non-bool
// value becomes "999999999". It returns the count of files changed.
func (w *Writer) ModifyVariables() (int, error) {
	count := 0
	for _, dir := range variableDirs(w.slot) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			data, err := gamefile.LoadMap(path)
			if err != nil {
				continue
			}
			value, ok := data["Value"].(string)
			if !ok {
				continue
			}
			switch {
			case value == "False":
				data["Value"] = "True"
			case value != "True":
				data["Value"] = "999999999"
			default:
				continue
			}
			if err := gamefile.SaveMap(path, data); err == nil {
				count++
			}
		}
	}
	return count, nil
}

// ForceOwnership 把 kind（"Properties" 或 "Businesses"）下每个类型目录的
// Property.json / Business.json 置为已拥有；文件缺失时按模板补齐。
// ForceOwnership marks every type folder under kind ("Properties" or
// "Businesses") as owned, filling a template when the file is missing.
func (w *Writer) ForceOwnership(kind string) (int, error) {
	fileName, dataType := "Property.json", "PropertyData"
	if kind == "Businesses" {
		fileName, dataType = "Business.json", "BusinessData"
	}

	kindDir, err := w.root.Resolve(kind)
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(kindDir)
	if err != nil {
		return 0, nil
	}

	updated := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(kindDir, entry.Name(), fileName)
		data, err := gamefile.LoadMap(path)
		if err != nil {
			continue
		}
		if len(data) == 0 {
			data = defaults.OwnershipTemplate(dataType, strings.ToLower(entry.Name()))
		} else {
			template := defaults.OwnershipTemplate(dataType, strings.ToLower(entry.Name()))
			for key, value := range template {
				if _, ok := data[key]; !ok {
					data[key] = value
				}
			}
			data["IsOwned"] = true
			data["SwitchStates"] = []any{true, true, true, true}
			data["ToggleableStates"] = []any{true, true}
		}
		if err := gamefile.SaveMap(path, data); err == nil {
			updated++
		}
	}
	return updated, nil
}

// GenerateNPCFiles 为每个 (名字, ID) 生成 NPC.json 与已解锁的 Relationship.json
// GenerateNPCFiles writes a fresh NPC.json plus an unlocked Relationship.json
// for every (name, id) pair.
func (w *Writer) GenerateNPCFiles(entries []NPCEntry) (int, error) {
	written := 0
	for _, entry := range entries {
		dir, err := w.root.Resolve(filepath.Join("NPCs", entry.Name))
		if err != nil {
			return written, err
		}
		if err := gamefile.SaveMap(filepath.Join(dir, "NPC.json"), defaults.NPCTemplate(entry.ID)); err != nil {
			return written, err
		}
		if err := gamefile.SaveMap(filepath.Join(dir, "Relationship.json"), defaults.RelationshipTemplate()); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// RecruitDealers 把所有 DealerData 且带 Recruited 键的 NPC 置为已招募
// RecruitDealers sets Recruited on every DealerData NPC that carries the key.
func (w *Writer) RecruitDealers() (int, error) {
	npcsDir, err := w.root.Resolve("NPCs")
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(npcsDir)
	if err != nil {
		return 0, nil
	}

	updated := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(npcsDir, entry.Name(), "NPC.json")
		data, err := gamefile.LoadMap(path)
		if err != nil || len(data) == 0 {
			continue
		}
		if gamefile.Str(data, "DataType", "") != "DealerData" {
			continue
		}
		if _, ok := data["Recruited"]; !ok {
			continue
		}
		data["Recruited"] = true
		if err := gamefile.SaveMap(path, data); err == nil {
			updated++
		}
	}
	return updated, nil
}

// UnlockRelationships 解锁每个 NPC 的关系并顺带招募经销商。返回改写的
// Relationship.json 数。
// UnlockRelationships maxes out every NPC's Relationship.json and recruits
// dealers along the way. It returns the number of relationship files touched.
func (w *Writer) UnlockRelationships() (int, error) {
	npcsDir, err := w.root.Resolve("NPCs")
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(npcsDir)
	if err != nil {
		return 0, nil
	}

	updated := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		relPath := filepath.Join(npcsDir, entry.Name(), "Relationship.json")
		if _, err := os.Stat(relPath); err == nil {
			rel, err := gamefile.LoadMap(relPath)
			if err == nil {
				rel["RelationDelta"] = gamefile.Number(999)
				rel["Unlocked"] = true
				rel["UnlockType"] = gamefile.Number(1)
				if err := gamefile.SaveMap(relPath, rel); err == nil {
					updated++
				}
			}
		}

		npcPath := filepath.Join(npcsDir, entry.Name(), "NPC.json")
		npc, err := gamefile.LoadMap(npcPath)
		if err != nil || len(npc) == 0 {
			continue
		}
		if gamefile.Str(npc, "DataType", "") == "DealerData" {
			npc["Recruited"] = true
			_ = gamefile.SaveMap(npcPath, npc)
		}
	}
	return updated, nil
}

// --- 产品操作 / Product operations ---

func (w *Writer) loadProductManager() (map[string]any, string, error) {
	path, err := w.root.Resolve(filepath.Join("Products", "Products.json"))
	if err != nil {
		return nil, "", err
	}
	data, err := gamefile.LoadMap(path)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		data = defaults.ProductManagerTemplate()
	}
	return data, path, nil
}

func stringList(data map[string]any, key string) []any {
	if list, ok := data[key].([]any); ok {
		return list
	}
	return []any{}
}

// AddDiscoveredProducts 把产品 ID 追加进 DiscoveredProducts（去重）
// AddDiscoveredProducts appends product ids to DiscoveredProducts, skipping
// ones already present.
func (w *Writer) AddDiscoveredProducts(ids []string) (int, error) {
	data, path, err := w.loadProductManager()
	if err != nil {
		return 0, err
	}
	discovered := stringList(data, "DiscoveredProducts")
	seen := map[string]bool{}
	for _, raw := range discovered {
		if s, ok := raw.(string); ok {
			seen[s] = true
		}
	}

	added := 0
	for _, id := range ids {
		if seen[id] {
			continue
		}
		discovered = append(discovered, id)
		seen[id] = true
		added++
	}
	data["DiscoveredProducts"] = discovered
	return added, gamefile.SaveMap(path, data)
}

// RemoveDiscoveredProducts 从 DiscoveredProducts 移除给定 ID，返回实际移除的
// RemoveDiscoveredProducts drops the given ids from DiscoveredProducts and
// returns the ones actually removed.
func (w *Writer) RemoveDiscoveredProducts(ids []string) ([]string, error) {
	data, path, err := w.loadProductManager()
	if err != nil {
		return nil, err
	}
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}

	var kept []any
	var removed []string
	for _, raw := range stringList(data, "DiscoveredProducts") {
		s, ok := raw.(string)
		if ok && drop[s] {
			removed = append(removed, s)
			continue
		}
		kept = append(kept, raw)
	}
	if kept == nil {
		kept = []any{}
	}
	data["DiscoveredProducts"] = kept
	return removed, gamefile.SaveMap(path, data)
}

// GenerateProducts 生成 count 个随机产品：每个写入 CreatedProducts/<id>.json，
// 并登记到 DiscoveredProducts、MixRecipes 与 ProductPrices；addToListed 时
// 同时上架。返回生成的 ID。
// GenerateProducts creates count random products: each gets a
// CreatedProducts/<id>.json plus entries in DiscoveredProducts, MixRecipes and
// ProductPrices; addToListed also puts them on sale. It returns the new ids.
func (w *Writer) GenerateProducts(count, idLength int, price int64, addToListed bool) ([]string, error) {
	data, path, err := w.loadProductManager()
	if err != nil {
		return nil, err
	}
	createdDir, err := w.root.Resolve(filepath.Join("Products", "CreatedProducts"))
	if err != nil {
		return nil, err
	}

	discovered := stringList(data, "DiscoveredProducts")
	recipes := stringList(data, "MixRecipes")
	prices := stringList(data, "ProductPrices")
	listed := stringList(data, "ListedProducts")

	taken := map[string]bool{}
	for _, raw := range discovered {
		if s, ok := raw.(string); ok {
			taken[s] = true
		}
	}

	var generated []string
	for i := 0; i < count; i++ {
		id := randomID(idLength)
		for taken[id] {
			id = randomID(idLength)
		}
		taken[id] = true
		discovered = append(discovered, id)
		generated = append(generated, id)

		mixer := id
		if s, ok := discovered[rand.IntN(len(discovered))].(string); ok {
			mixer = s
		}
		ingredient := defaults.ProductIngredients[rand.IntN(len(defaults.ProductIngredients))]
		recipes = append(recipes, map[string]any{"Product": ingredient, "Mixer": mixer, "Output": id})
		prices = append(prices, map[string]any{"String": id, "Int": gamefile.Number(price)})

		if err := gamefile.SaveMap(filepath.Join(createdDir, id+".json"), productBody(id)); err != nil {
			return generated, err
		}
	}

	if addToListed {
		for _, id := range generated {
			listed = append(listed, id)
		}
	}

	data["DiscoveredProducts"] = discovered
	data["MixRecipes"] = recipes
	data["ProductPrices"] = prices
	data["ListedProducts"] = listed
	return generated, gamefile.SaveMap(path, data)
}

// DeleteGeneratedProducts 删除 CreatedProducts 下的全部产品文件，并把这些 ID
// 从四个登记列表中剔除。返回删除的产品数。
// DeleteGeneratedProducts removes every file under CreatedProducts and strips
// those ids from all four registry lists. It returns the number deleted.
func (w *Writer) DeleteGeneratedProducts() (int, error) {
	createdDir, err := w.root.Resolve(filepath.Join("Products", "CreatedProducts"))
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(createdDir)
	if err != nil {
		return 0, nil
	}

	generated := map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		if err := os.Remove(filepath.Join(createdDir, entry.Name())); err != nil {
			return len(generated), fmt.Errorf("remove generated product: %w", err)
		}
		generated[id] = true
	}
	if len(generated) == 0 {
		return 0, nil
	}

	data, path, err := w.loadProductManager()
	if err != nil {
		return len(generated), err
	}
	filterIDs := func(key string) {
		var kept []any
		for _, raw := range stringList(data, key) {
			if s, ok := raw.(string); ok && generated[s] {
				continue
			}
			kept = append(kept, raw)
		}
		if kept == nil {
			kept = []any{}
		}
		data[key] = kept
	}
	filterIDs("DiscoveredProducts")
	filterIDs("ListedProducts")

	var recipes []any
	for _, raw := range stringList(data, "MixRecipes") {
		if recipe, ok := raw.(map[string]any); ok && generated[gamefile.Str(recipe, "Output", "")] {
			continue
		}
		recipes = append(recipes, raw)
	}
	if recipes == nil {
		recipes = []any{}
	}
	data["MixRecipes"] = recipes

	var prices []any
	for _, raw := range stringList(data, "ProductPrices") {
		if price, ok := raw.(map[string]any); ok && generated[gamefile.Str(price, "String", "")] {
			continue
		}
		prices = append(prices, raw)
	}
	if prices == nil {
		prices = []any{}
	}
	data["ProductPrices"] = prices

	return len(generated), gamefile.SaveMap(path, data)
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}

func productBody(id string) map[string]any {
	effects := make([]string, len(defaults.ProductProperties))
	copy(effects, defaults.ProductProperties)
	rand.Shuffle(len(effects), func(i, j int) { effects[i], effects[j] = effects[j], effects[i] })
	props := make([]any, 0, 7)
	for _, effect := range effects[:7] {
		props = append(props, effect)
	}

	color := func() map[string]any {
		return map[string]any{
			"r": gamefile.Number(int64(rand.IntN(256))),
			"g": gamefile.Number(int64(rand.IntN(256))),
			"b": gamefile.Number(int64(rand.IntN(256))),
			"a": gamefile.Number(255),
		}
	}
	return map[string]any{
		"DataType":    "WeedProductData",
		"DataVersion": gamefile.Number(0),
		"GameVersion": "0.2.9f4",
		"Name":        id,
		"ID":          id,
		"DrugType":    gamefile.Number(0),
		"Properties":  props,
		"AppearanceSettings": map[string]any{
			"MainColor":      color(),
			"SecondaryColor": color(),
			"LeafColor":      color(),
			"StemColor":      color(),
		},
	}
}
