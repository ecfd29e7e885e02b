package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportService flattens the catalogs and the mapping set into xlsx
// workbooks. Sheet layout follows the spreadsheets the operators
// already work with: a structure sheet, an equipment sheet and a totals
// sheet per catalog.
type ExportService struct {
	Floors      *FloorService
	Turar       *TurarService
	Connections *ConnectionService
}

func NewExportService(floors *FloorService, turar *TurarService, connections *ConnectionService) *ExportService {
	return &ExportService{Floors: floors, Turar: turar, Connections: connections}
}

const (
	sheetStructure = "Структура"
	sheetEquipment = "Оборудование"
	sheetStats     = "Статистика"
	sheetMappings  = "Сопоставления"
)

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func exportFileName(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("2006-01-02"))
}

// FloorsWorkbook exports the floor-plan catalog: one structure row per
// room (or per empty department), one equipment row per item, and
// catalog-wide totals.
func (s *ExportService) FloorsWorkbook() (*excelize.File, string, error) {
	floors, err := s.Floors.List()
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetStructure); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetEquipment); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetStats); err != nil {
		return nil, "", err
	}

	if err := writeRow(f, sheetStructure, 1, []interface{}{
		"Этаж", "Блок", "Код блока", "Отделение", "Кабинет", "Код кабинета", "Площадь", "Количество оборудования",
	}); err != nil {
		return nil, "", err
	}
	if err := writeRow(f, sheetEquipment, 1, []interface{}{
		"Этаж", "Блок", "Отделение", "Кабинет", "Код оборудования", "Наименование", "Количество",
	}); err != nil {
		return nil, "", err
	}

	structureRow := 2
	equipmentRow := 2
	var blocksTotal, departmentsTotal, roomsTotal, equipmentTotal int
	for _, floor := range floors {
		blocksTotal += len(floor.Blocks)
		for _, block := range floor.Blocks {
			departmentsTotal += len(block.Departments)
			for _, dept := range block.Departments {
				if len(dept.Rooms) == 0 {
					if err := writeRow(f, sheetStructure, structureRow, []interface{}{
						floor.Name, block.Name, block.Code, dept.Name, "", "", "", 0,
					}); err != nil {
						return nil, "", err
					}
					structureRow++
					continue
				}
				roomsTotal += len(dept.Rooms)
				for _, room := range dept.Rooms {
					code := ""
					if room.Code != nil {
						code = *room.Code
					}
					var area interface{} = ""
					if room.Area != nil {
						area = *room.Area
					}
					if err := writeRow(f, sheetStructure, structureRow, []interface{}{
						floor.Name, block.Name, block.Code, dept.Name, room.Name, code, area, len(room.Equipment),
					}); err != nil {
						return nil, "", err
					}
					structureRow++

					for _, eq := range room.Equipment {
						equipmentTotal += eq.Quantity
						if err := writeRow(f, sheetEquipment, equipmentRow, []interface{}{
							floor.Name, block.Name, dept.Name, room.Name, eq.Code, eq.Name, eq.Quantity,
						}); err != nil {
							return nil, "", err
						}
						equipmentRow++
					}
				}
			}
		}
	}

	statsRows := [][]interface{}{
		{"Показатель", "Значение"},
		{"Общее количество этажей", len(floors)},
		{"Общее количество блоков", blocksTotal},
		{"Общее количество отделений", departmentsTotal},
		{"Общее количество кабинетов", roomsTotal},
		{"Общее количество оборудования", equipmentTotal},
	}
	for i, row := range statsRows {
		if err := writeRow(f, sheetStats, i+1, row); err != nil {
			return nil, "", err
		}
	}

	return f, exportFileName("МГБ_Проектировщики"), nil
}

// TurarWorkbook exports the inventory catalog in the same three-sheet
// shape, minus the floor/block columns it does not have.
func (s *ExportService) TurarWorkbook() (*excelize.File, string, error) {
	departments, err := s.Turar.List()
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetStructure); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetEquipment); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetStats); err != nil {
		return nil, "", err
	}

	if err := writeRow(f, sheetStructure, 1, []interface{}{"Отделение", "Кабинет", "Количество оборудования"}); err != nil {
		return nil, "", err
	}
	if err := writeRow(f, sheetEquipment, 1, []interface{}{"Отделение", "Кабинет", "Код оборудования", "Наименование", "Количество"}); err != nil {
		return nil, "", err
	}

	structureRow := 2
	equipmentRow := 2
	var roomsTotal, equipmentTotal int
	for _, dept := range departments {
		if len(dept.Rooms) == 0 {
			if err := writeRow(f, sheetStructure, structureRow, []interface{}{dept.Name, "", 0}); err != nil {
				return nil, "", err
			}
			structureRow++
			continue
		}
		roomsTotal += len(dept.Rooms)
		for _, room := range dept.Rooms {
			if err := writeRow(f, sheetStructure, structureRow, []interface{}{dept.Name, room.Name, len(room.Equipment)}); err != nil {
				return nil, "", err
			}
			structureRow++

			for _, eq := range room.Equipment {
				equipmentTotal += eq.Quantity
				if err := writeRow(f, sheetEquipment, equipmentRow, []interface{}{dept.Name, room.Name, eq.Code, eq.Name, eq.Quantity}); err != nil {
					return nil, "", err
				}
				equipmentRow++
			}
		}
	}

	statsRows := [][]interface{}{
		{"Показатель", "Значение"},
		{"Общее количество отделений", len(departments)},
		{"Общее количество кабинетов", roomsTotal},
		{"Общее количество оборудования", equipmentTotal},
	}
	for i, row := range statsRows {
		if err := writeRow(f, sheetStats, i+1, row); err != nil {
			return nil, "", err
		}
	}

	return f, exportFileName("МГБ_Турар"), nil
}

// ConnectionsWorkbook exports the mapping set: one row per department
// pair, with Turar departments that have no link and the unmapped
// floor-plan bucket listed after them.
func (s *ExportService) ConnectionsWorkbook(ctx context.Context) (*excelize.File, string, error) {
	data, err := s.Connections.ListReconciled(ctx)
	if err != nil {
		return nil, "", err
	}
	groups := GroupConnections(data)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetMappings); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetStats); err != nil {
		return nil, "", err
	}

	if err := writeRow(f, sheetMappings, 1, []interface{}{"Отделение Турар", "Отделение Проектировщики", "Статус"}); err != nil {
		return nil, "", err
	}

	row := 2
	var linkedTurar int
	for _, group := range groups.Groups {
		if len(group.ProjectDepartments) == 0 {
			if err := writeRow(f, sheetMappings, row, []interface{}{group.TurarDepartment.Name, "", "Без связи"}); err != nil {
				return nil, "", err
			}
			row++
			continue
		}
		linkedTurar++
		for _, dept := range group.ProjectDepartments {
			if err := writeRow(f, sheetMappings, row, []interface{}{group.TurarDepartment.Name, dept.Name, "Связано"}); err != nil {
				return nil, "", err
			}
			row++
		}
	}
	for _, dept := range groups.Unmapped {
		if err := writeRow(f, sheetMappings, row, []interface{}{"", dept.Name, "Без связи"}); err != nil {
			return nil, "", err
		}
		row++
	}

	statsRows := [][]interface{}{
		{"Показатель", "Значение"},
		{"Всего сопоставлений", len(data.Mappings)},
		{"Отделений Турар со связью", linkedTurar},
		{"Отделений Турар без связи", len(groups.Groups) - linkedTurar},
		{"Отделений Проектировщиков без связи", len(groups.Unmapped)},
	}
	for i, statsRow := range statsRows {
		if err := writeRow(f, sheetStats, i+1, statsRow); err != nil {
			return nil, "", err
		}
	}

	return f, exportFileName("МГБ_Соединения"), nil
}
