package v769

import (
	"fmt"

	"github.com/dynamitemc/froglight/protocol/packet"
)

// Play ids are dense, so the tables are lists of names indexed by id.
// Names without a model decode to *packet.Opaque.

var playClientboundNames = []string{
	"bundle_delimiter", "add_entity", "add_experience_orb", "animate",
	"award_stats", "block_changed_ack", "block_destruction", "block_entity_data",
	"block_event", "block_update", "boss_event", "change_difficulty",
	"chunk_batch_finished", "chunk_batch_start", "chunks_biomes", "clear_titles",
	"command_suggestions", "commands", "container_close", "container_set_content",
	"container_set_data", "container_set_slot", "cookie_request", "cooldown",
	"custom_chat_completions", "custom_payload", "damage_event", "debug_sample",
	"delete_chat", "disconnect", "disguised_chat", "entity_event",
	"entity_position_sync", "explode", "forget_level_chunk", "game_event",
	"horse_screen_open", "hurt_animation", "initialize_border", "keep_alive",
	"level_chunk_with_light", "level_event", "level_particles", "light_update",
	"login", "map_item_data", "merchant_offers", "move_entity_pos",
	"move_entity_pos_rot", "move_minecart_along_track", "move_entity_rot", "move_vehicle",
	"open_book", "open_screen", "open_sign_editor", "ping",
	"pong_response", "place_ghost_recipe", "player_abilities", "player_chat",
	"player_combat_end", "player_combat_enter", "player_combat_kill", "player_info_remove",
	"player_info_update", "player_look_at", "player_position", "player_rotation",
	"recipe_book_add", "recipe_book_remove", "recipe_book_settings", "remove_entities",
	"remove_mob_effect", "reset_score", "resource_pack_pop", "resource_pack_push",
	"respawn", "rotate_head", "section_blocks_update", "select_advancements_tab",
	"server_data", "set_action_bar_text", "set_border_center", "set_border_lerp_size",
	"set_border_size", "set_border_warning_delay", "set_border_warning_distance", "set_camera",
	"set_chunk_cache_center", "set_chunk_cache_radius", "set_cursor_item", "set_default_spawn_position",
	"set_display_objective", "set_entity_data", "set_entity_link", "set_entity_motion",
	"set_equipment", "set_experience", "set_health", "set_held_slot",
	"set_objective", "set_passengers", "set_player_inventory", "set_player_team",
	"set_score", "set_simulation_distance", "set_subtitle_text", "set_time",
	"set_title_text", "set_titles_animation", "sound_entity", "sound",
	"start_configuration", "stop_sound", "store_cookie", "system_chat",
	"tab_list", "tag_query", "take_item_entity", "teleport_entity",
	"ticking_state", "ticking_step", "transfer", "update_advancements",
	"update_attributes", "update_mob_effect", "update_recipes", "update_tags",
	"projectile_power", "custom_report_details", "server_links",
}

var playServerboundNames = []string{
	"accept_teleportation", "block_entity_tag_query", "bundle_item_selected", "change_difficulty",
	"chat_ack", "chat_command", "chat_command_signed", "chat",
	"chat_session_update", "chunk_batch_received", "client_command", "client_tick_end",
	"client_information", "command_suggestion", "configuration_acknowledged", "container_button_click",
	"container_click", "container_close", "container_slot_state_changed", "cookie_response",
	"custom_payload", "debug_sample_subscription", "edit_book", "entity_tag_query",
	"interact", "jigsaw_generate", "keep_alive", "lock_difficulty",
	"move_player_pos", "move_player_pos_rot", "move_player_rot", "move_player_status_only",
	"move_vehicle", "paddle_boat", "pick_item_from_block", "pick_item_from_entity",
	"ping_request", "place_recipe", "player_abilities", "player_action",
	"player_command", "player_input", "player_loaded", "pong",
	"recipe_book_change_settings", "recipe_book_seen_recipe", "rename_item", "resource_pack",
	"seen_advancements", "select_trade", "set_beacon", "set_carried_item",
	"set_command_block", "set_command_minecart", "set_creative_mode_slot", "set_jigsaw_block",
	"set_structure_block", "sign_update", "swing", "teleport_to_entity",
	"use_item_on", "use_item",
}

var playClientboundModels = map[string]func() packet.Packet{
	"block_update":               func() packet.Packet { return new(ClientboundBlockUpdate) },
	"chunk_batch_finished":       func() packet.Packet { return new(ClientboundChunkBatchFinished) },
	"chunk_batch_start":          func() packet.Packet { return new(ClientboundChunkBatchStart) },
	"disconnect":                 func() packet.Packet { return new(ClientboundPlayDisconnect) },
	"forget_level_chunk":         func() packet.Packet { return new(ClientboundForgetLevelChunk) },
	"game_event":                 func() packet.Packet { return new(ClientboundGameEvent) },
	"keep_alive":                 func() packet.Packet { return new(ClientboundPlayKeepAlive) },
	"level_chunk_with_light":     func() packet.Packet { return new(ClientboundLevelChunkWithLight) },
	"login":                      func() packet.Packet { return new(ClientboundLogin) },
	"ping":                       func() packet.Packet { return new(ClientboundPlayPing) },
	"pong_response":              func() packet.Packet { return new(ClientboundPlayPongResponse) },
	"player_position":            func() packet.Packet { return new(ClientboundPlayerPosition) },
	"respawn":                    func() packet.Packet { return new(ClientboundRespawn) },
	"section_blocks_update":      func() packet.Packet { return new(ClientboundSectionBlocksUpdate) },
	"set_chunk_cache_center":     func() packet.Packet { return new(ClientboundSetChunkCacheCenter) },
	"set_default_spawn_position": func() packet.Packet { return new(ClientboundSetDefaultSpawnPosition) },
	"set_time":                   func() packet.Packet { return new(ClientboundSetTime) },
	"start_configuration":        func() packet.Packet { return new(ClientboundStartConfiguration) },
	"system_chat":                func() packet.Packet { return new(ClientboundSystemChat) },
}

var playServerboundModels = map[string]func() packet.Packet{
	"accept_teleportation":       func() packet.Packet { return new(ServerboundAcceptTeleportation) },
	"chat":                       func() packet.Packet { return new(ServerboundChat) },
	"chunk_batch_received":       func() packet.Packet { return new(ServerboundChunkBatchReceived) },
	"client_command":             func() packet.Packet { return new(ServerboundClientCommand) },
	"client_information":         func() packet.Packet { return new(ServerboundPlayClientInformation) },
	"client_tick_end":            func() packet.Packet { return new(ServerboundClientTickEnd) },
	"configuration_acknowledged": func() packet.Packet { return new(ServerboundConfigurationAcknowledged) },
	"custom_payload":             func() packet.Packet { return new(ServerboundCustomPayload) },
	"keep_alive":                 func() packet.Packet { return new(ServerboundPlayKeepAlive) },
	"move_player_pos":            func() packet.Packet { return new(ServerboundMovePlayerPos) },
	"move_player_pos_rot":        func() packet.Packet { return new(ServerboundMovePlayerPosRot) },
	"ping_request":               func() packet.Packet { return new(ServerboundPlayPingRequest) },
	"player_loaded":              func() packet.Packet { return new(ServerboundPlayerLoaded) },
	"pong":                       func() packet.Packet { return new(ServerboundPlayPong) },
}

func denseEntries(names []string, models map[string]func() packet.Packet) []packet.Entry {
	entries := make([]packet.Entry, len(names))
	used := 0
	for id, name := range names {
		entries[id] = packet.Entry{ID: int32(id), Name: name, New: models[name]}
		if models[name] != nil {
			used++
		}
	}
	if used != len(models) {
		panic(fmt.Sprintf("v769: %d packet models have no id", len(models)-used))
	}
	return entries
}

var (
	playClientbound = packet.NewSet(packet.Play, packet.Clientbound, denseEntries(playClientboundNames, playClientboundModels)...)
	playServerbound = packet.NewSet(packet.Play, packet.Serverbound, denseEntries(playServerboundNames, playServerboundModels)...)
)
