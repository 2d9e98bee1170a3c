package i18n

import "golang.org/x/text/message"

func init() {
	lang := DefaultLanguage

	message.SetString(lang, CharacterNotFoundKey, "角色「%s」未找到，請確認角色名稱是否正確。")
	message.SetString(lang, MissingNameKey, "缺少 characterName 查詢參數。")
	message.SetString(lang, UnknownSectionKey, "未知的區塊「%s」。")
	message.SetString(lang, ModuleSectionKey, "skillModule 僅能搭配 section=skills 使用。")
	message.SetString(lang, UnknownModuleKey, "未知的技能模組「%s」。")
	message.SetString(lang, FetchFailedKey, "查詢失敗，請稍後再試。")
}
