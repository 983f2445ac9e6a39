package entity

// 强类型 ID：防止把军队 ID 误传成六角格 ID 这类错误在编译期漏掉。

type CampaignID int
type HexID int
type FactionID int
type StrongholdID int
type CommanderID int
type PlayerID int
type ArmyID int
type DetachmentID int
type UnitTypeID int
type MessageID int
type OrderID int
type EventID int
type SiegeID int
type BattleID int
type ShipTypeID int
type ShipID int
type MercenaryCompanyID int
type MercenaryContractID int
type OperationID int
type RecruitmentID int
