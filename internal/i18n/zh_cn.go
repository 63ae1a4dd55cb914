package i18n

// ZhCNMessages 简体中文消息目录
// ZhCNMessages Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	// TUI - 存档列表
	"slots.title":        "存档槽位",
	"slots.col_slot":     "槽位",
	"slots.col_org":      "组织",
	"slots.col_version":  "版本",
	"slots.col_networth": "净资产",
	"slots.col_created":  "创建时间",
	"slots.none":         "未找到存档文件",
	"slots.hint":         "enter 打开 · n 新建存档 · q 退出",

	// TUI - 存档概览
	"summary.title":        "存档概览",
	"summary.organisation": "组织名称",
	"summary.game_version": "游戏版本",
	"summary.created":      "创建时间",
	"summary.online":       "在线余额",
	"summary.networth":     "净资产",
	"summary.lifetime":     "累计收入",
	"summary.weekly":       "每周存款",
	"summary.rank":         "等级",
	"summary.tier":         "阶级",
	"summary.properties":   "物业",
	"summary.npcs":         "NPC",
	"summary.hint":         "enter 编辑 · esc 返回",

	// TUI - 编辑页标签
	"tab.money":      "金钱",
	"tab.rank":       "等级",
	"tab.properties": "物业",
	"tab.products":   "产品",
	"tab.unlocks":    "解锁",
	"tab.npcs":       "NPC",
	"tab.misc":       "杂项",
	"tab.backups":    "备份",

	// TUI - 字段标签
	"field.online":       "在线余额",
	"field.networth":     "净资产",
	"field.lifetime":     "累计收入",
	"field.weekly":       "每周存款",
	"field.rank_name":    "等级名称",
	"field.rank_value":   "等级",
	"field.tier":         "阶级",
	"field.organisation": "组织名称",
	"field.prop_type":    "物业类型",
	"field.quantity":     "数量",
	"field.quality":      "品质",
	"field.packaging":    "包装",
	"field.filter":       "物品筛选",
	"field.count":        "数量",
	"field.id_length":    "ID 长度",
	"field.price":        "价格",
	"field.product_ids":  "产品 ID（逗号分隔）",
	"field.listed":       "生成后加入上架列表",
	"field.overwrite":    "覆盖已安装的模组",
	"field.npc_log":      "在此粘贴 player.log 内容...",

	// TUI - 操作
	"action.apply":            "应用",
	"action.complete_quests":  "完成所有任务",
	"action.modify_variables": "变量拉满",
	"action.unlock_rank":      "解锁等级进度",
	"action.own_properties":   "获得所有物业",
	"action.own_businesses":   "获得所有商铺",
	"action.unlock_npcs":      "解锁所有 NPC",
	"action.recruit_dealers":  "招募所有经销商",
	"action.import_npc_log":   "从日志导入 NPC",
	"action.discover":         "发现产品",
	"action.generate":         "生成产品",
	"action.remove":           "移除已发现产品",
	"action.reset_generated":  "删除生成的产品",
	"action.restore":          "恢复",
	"action.restore_all":      "恢复全部",
	"action.purge_backups":    "删除所有备份",
	"action.new_save":         "生成新存档",
	"action.install_mod":      "安装成就模组",

	// TUI - 状态栏
	"status.ready":       "就绪",
	"status.working":     "处理中...",
	"status.downloading": "正在下载 %s...",
	"status.saved":       "修改已写入",

	// TUI - 快捷键提示
	"keys.tabs":  "tab/shift+tab 切换",
	"keys.apply": "enter 应用",
	"keys.back":  "esc 返回",
	"keys.quit":  "q 退出",
	"keys.help":  "? 帮助",

	// 确认
	"confirm.write":       "应用这些修改? [y/N]",
	"confirm.restore":     "从 %s 的 %s 恢复? [y/N]",
	"confirm.restore_all": "从初始备份恢复整个存档? [y/N]",
	"confirm.purge":       "删除该槽位的全部备份? [y/N]",
	"confirm.overwrite":   "模组已安装，是否覆盖? [y/N]",
	"confirm.cancelled":   "已取消",

	// 操作结果
	"result.stats":         "属性已更新",
	"result.properties":    "物品已更新: %d",
	"result.quests":        "任务已完成: %d (子目标: %d)",
	"result.variables":     "变量已修改: %d",
	"result.rank":          "等级进度已解锁",
	"result.ownership":     "%s 已更新: %d",
	"result.npcs_unlocked": "NPC 关系已解锁: %d",
	"result.dealers":       "经销商已招募: %d",
	"result.npcs_imported": "NPC 目录已生成: %d",
	"result.discovered":    "产品已发现: %d",
	"result.generated":     "产品已生成: %d",
	"result.removed":       "产品已移除: %d",
	"result.reset":         "生成的产品已删除: %d",
	"result.restored":      "备份已恢复: %s",
	"result.restored_all":  "已从初始备份恢复存档",
	"result.purged":        "备份已删除",
	"result.new_save":      "新存档已创建: %s",
	"result.mod_installed": "模组已安装: %s",

	// 备份页
	"backup.col_feature": "功能",
	"backup.col_stamp":   "时间戳",
	"backup.none":        "暂无备份",
	"backup.initial":     "初始",

	// 错误
	"error.load":        "读取存档失败: %s",
	"error.write":       "写入失败: %s",
	"error.validation":  "无效的 %s: %s",
	"error.download":    "下载失败: %s",
	"error.backup":      "备份失败: %s",
	"error.no_backup":   "未找到备份",
	"error.slots_full":  "所有存档槽位已占用",
	"error.no_game_dir": "未找到游戏安装目录",
	"error.no_saves":    "未找到存档目录",

	// 启动
	"startup.welcome": "Schedule I 存档编辑器 — 存档位置: %s",
	"startup.cli":     "命令行模式运行中",
}
